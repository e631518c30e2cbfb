// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubscriptionStatus is derived from the stored fields and a point in time.
// It is never persisted.
type SubscriptionStatus string

const (
	SubscriptionStatusTrial     SubscriptionStatus = "trial"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusDueSoon   SubscriptionStatus = "due_soon"
	SubscriptionStatusDueToday  SubscriptionStatus = "due_today"
	SubscriptionStatusOverdue   SubscriptionStatus = "overdue"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// Subscription represents a recurring payment obligation.
type Subscription struct {
	ID                 uuid.UUID
	Name               string
	Amount             decimal.Decimal
	Currency           CurrencyCode
	Category           Category
	Cycle              BillingCycle
	StartDate          time.Time
	NextDueDate        time.Time
	ReminderDaysBefore int
	IsActive           bool
	IsPaused           bool
	TrialEndDate       *time.Time
	Payments           []SubscriptionPayment // Ordered by PaidAt
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// SubscriptionPayment records one paid cycle of a subscription.
type SubscriptionPayment struct {
	ID             uuid.UUID
	SubscriptionID uuid.UUID
	Amount         decimal.Decimal
	Currency       CurrencyCode
	PaidAt         time.Time
	DueDate        time.Time // The due date this payment settled
}

// Price returns the subscription amount as Money.
func (s Subscription) Price() Money {
	return NewMoney(s.Amount, s.Currency)
}

// Clone returns a copy whose payment history does not alias s.
func (s Subscription) Clone() Subscription {
	c := s
	c.Payments = append([]SubscriptionPayment(nil), s.Payments...)
	if s.TrialEndDate != nil {
		t := *s.TrialEndDate
		c.TrialEndDate = &t
	}
	return c
}
