// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/domain/entity"
)

// SubscriptionModel represents the subscriptions table in the database.
type SubscriptionModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name               string          `gorm:"type:varchar(100);not null"`
	Amount             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency           string          `gorm:"type:varchar(3);not null"`
	Category           string          `gorm:"type:varchar(30);not null"`
	CycleKind          string          `gorm:"type:varchar(10);not null"`
	CycleDays          int             `gorm:"not null;default:0"`
	StartDate          time.Time       `gorm:"not null"`
	NextDueDate        time.Time       `gorm:"not null;index"`
	ReminderDaysBefore int             `gorm:"not null;default:3"`
	IsActive           bool            `gorm:"not null;default:true"`
	IsPaused           bool            `gorm:"not null;default:false"`
	TrialEndDate       *time.Time
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName returns the table name for the SubscriptionModel.
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// SubscriptionPaymentModel represents the subscription_payments table in the database.
type SubscriptionPaymentModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SubscriptionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency       string          `gorm:"type:varchar(3);not null"`
	PaidAt         time.Time       `gorm:"not null;index"`
	DueDate        time.Time       `gorm:"not null"`
}

// TableName returns the table name for the SubscriptionPaymentModel.
func (SubscriptionPaymentModel) TableName() string {
	return "subscription_payments"
}

// ToEntity converts a SubscriptionModel and its payment rows to a domain Subscription entity.
func (m *SubscriptionModel) ToEntity(payments []SubscriptionPaymentModel) *entity.Subscription {
	sub := &entity.Subscription{
		ID:                 m.ID,
		Name:               m.Name,
		Amount:             m.Amount,
		Currency:           entity.CurrencyCode(m.Currency),
		Category:           entity.Category(m.Category),
		Cycle:              entity.BillingCycle{Kind: entity.BillingCycleKind(m.CycleKind), Days: m.CycleDays},
		StartDate:          m.StartDate,
		NextDueDate:        m.NextDueDate,
		ReminderDaysBefore: m.ReminderDaysBefore,
		IsActive:           m.IsActive,
		IsPaused:           m.IsPaused,
		TrialEndDate:       m.TrialEndDate,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}

	if len(payments) > 0 {
		sub.Payments = make([]entity.SubscriptionPayment, len(payments))
		for i, p := range payments {
			sub.Payments[i] = entity.SubscriptionPayment{
				ID:             p.ID,
				SubscriptionID: p.SubscriptionID,
				Amount:         p.Amount,
				Currency:       entity.CurrencyCode(p.Currency),
				PaidAt:         p.PaidAt,
				DueDate:        p.DueDate,
			}
		}
	}
	return sub
}

// SubscriptionFromEntity creates a SubscriptionModel and its payment rows from a domain Subscription entity.
func SubscriptionFromEntity(sub *entity.Subscription) (*SubscriptionModel, []SubscriptionPaymentModel) {
	m := &SubscriptionModel{
		ID:                 sub.ID,
		Name:               sub.Name,
		Amount:             sub.Amount,
		Currency:           string(sub.Currency),
		Category:           string(sub.Category),
		CycleKind:          string(sub.Cycle.Kind),
		CycleDays:          sub.Cycle.Days,
		StartDate:          sub.StartDate,
		NextDueDate:        sub.NextDueDate,
		ReminderDaysBefore: sub.ReminderDaysBefore,
		IsActive:           sub.IsActive,
		IsPaused:           sub.IsPaused,
		TrialEndDate:       sub.TrialEndDate,
		CreatedAt:          sub.CreatedAt,
		UpdatedAt:          sub.UpdatedAt,
	}

	payments := make([]SubscriptionPaymentModel, len(sub.Payments))
	for i, p := range sub.Payments {
		payments[i] = SubscriptionPaymentModel{
			ID:             p.ID,
			SubscriptionID: sub.ID,
			Amount:         p.Amount,
			Currency:       string(p.Currency),
			PaidAt:         p.PaidAt,
			DueDate:        p.DueDate,
		}
	}
	return m, payments
}
