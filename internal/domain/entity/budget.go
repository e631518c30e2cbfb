// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetStatus is derived from spending against a budget. It is never persisted.
type BudgetStatus string

const (
	BudgetStatusOnTrack   BudgetStatus = "on_track"
	BudgetStatusWarning   BudgetStatus = "warning"
	BudgetStatusExceeded  BudgetStatus = "exceeded"
	BudgetStatusCompleted BudgetStatus = "completed"
)

// DefaultAlertThreshold is the share of the budget at which a warning is raised.
const DefaultAlertThreshold = 0.8

// Budget represents a spending limit for a category over a recurring period.
type Budget struct {
	ID              uuid.UUID
	Name            string
	Amount          decimal.Decimal
	Currency        CurrencyCode
	Category        Category
	Period          Granularity
	RolloverEnabled bool
	RolloverAmount  decimal.Decimal
	AlertThreshold  float64 // In [0,1]
	StartDate       time.Time
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBudget creates a new active Budget with the default alert threshold.
func NewBudget(name string, amount decimal.Decimal, currency CurrencyCode, category Category, period Granularity, startDate time.Time) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:             uuid.New(),
		Name:           name,
		Amount:         amount,
		Currency:       currency,
		Category:       category,
		Period:         period,
		RolloverAmount: decimal.Zero,
		AlertThreshold: DefaultAlertThreshold,
		StartDate:      startDate,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// EffectiveBudget is the amount available this period, including rollover when enabled.
func (b Budget) EffectiveBudget() decimal.Decimal {
	if b.RolloverEnabled {
		return b.Amount.Add(b.RolloverAmount)
	}
	return b.Amount
}
