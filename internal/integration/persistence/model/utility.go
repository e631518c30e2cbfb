// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/domain/entity"
)

// UtilityAccountModel represents the utility_accounts table in the database.
type UtilityAccountModel struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Name              string           `gorm:"type:varchar(100);not null"`
	Kind              string           `gorm:"type:varchar(20);not null"`
	Currency          string           `gorm:"type:varchar(3);not null"`
	MonthlyAverage    decimal.Decimal  `gorm:"type:decimal(15,4);not null;default:0"`
	LastPaymentAmount *decimal.Decimal `gorm:"type:decimal(15,2)"`
	LastPaymentDate   *time.Time
	NextDueDate       *time.Time
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for the UtilityAccountModel.
func (UtilityAccountModel) TableName() string {
	return "utility_accounts"
}

// UtilityPaymentModel represents the utility_payments table in the database.
type UtilityPaymentModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaidAt    time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for the UtilityPaymentModel.
func (UtilityPaymentModel) TableName() string {
	return "utility_payments"
}

// MeterReadingModel represents the meter_readings table in the database.
type MeterReadingModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Value     decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	ReadAt    time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for the MeterReadingModel.
func (MeterReadingModel) TableName() string {
	return "meter_readings"
}

// ToEntity converts a UtilityAccountModel and its child rows to a domain UtilityAccount entity.
func (m *UtilityAccountModel) ToEntity(payments []UtilityPaymentModel, readings []MeterReadingModel) *entity.UtilityAccount {
	account := &entity.UtilityAccount{
		ID:                m.ID,
		Name:              m.Name,
		Kind:              entity.UtilityKind(m.Kind),
		Currency:          entity.CurrencyCode(m.Currency),
		MonthlyAverage:    m.MonthlyAverage,
		LastPaymentAmount: m.LastPaymentAmount,
		LastPaymentDate:   m.LastPaymentDate,
		NextDueDate:       m.NextDueDate,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}

	for _, p := range payments {
		account.Payments = append(account.Payments, entity.UtilityPayment{
			ID:        p.ID,
			AccountID: p.AccountID,
			Amount:    p.Amount,
			PaidAt:    p.PaidAt,
		})
	}
	for _, r := range readings {
		account.Readings = append(account.Readings, entity.MeterReading{
			ID:        r.ID,
			AccountID: r.AccountID,
			Value:     r.Value,
			ReadAt:    r.ReadAt,
		})
	}
	return account
}

// UtilityAccountFromEntity creates a UtilityAccountModel and its child rows from a domain UtilityAccount entity.
func UtilityAccountFromEntity(account *entity.UtilityAccount) (*UtilityAccountModel, []UtilityPaymentModel, []MeterReadingModel) {
	m := &UtilityAccountModel{
		ID:                account.ID,
		Name:              account.Name,
		Kind:              string(account.Kind),
		Currency:          string(account.Currency),
		MonthlyAverage:    account.MonthlyAverage,
		LastPaymentAmount: account.LastPaymentAmount,
		LastPaymentDate:   account.LastPaymentDate,
		NextDueDate:       account.NextDueDate,
		CreatedAt:         account.CreatedAt,
		UpdatedAt:         account.UpdatedAt,
	}

	payments := make([]UtilityPaymentModel, len(account.Payments))
	for i, p := range account.Payments {
		payments[i] = UtilityPaymentModel{ID: p.ID, AccountID: account.ID, Amount: p.Amount, PaidAt: p.PaidAt}
	}
	readings := make([]MeterReadingModel, len(account.Readings))
	for i, r := range account.Readings {
		readings[i] = MeterReadingModel{ID: r.ID, AccountID: account.ID, Value: r.Value, ReadAt: r.ReadAt}
	}
	return m, payments, readings
}
