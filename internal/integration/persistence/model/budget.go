// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database.
type BudgetModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name            string          `gorm:"type:varchar(100);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency        string          `gorm:"type:varchar(3);not null"`
	Category        string          `gorm:"type:varchar(30);not null;index"`
	Period          string          `gorm:"type:varchar(10);not null;default:'monthly'"`
	RolloverEnabled bool            `gorm:"not null;default:false"`
	RolloverAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	AlertThreshold  float64         `gorm:"not null;default:0.8"`
	StartDate       time.Time       `gorm:"not null"`
	IsActive        bool            `gorm:"not null;default:true;index"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	return &entity.Budget{
		ID:              m.ID,
		Name:            m.Name,
		Amount:          m.Amount,
		Currency:        entity.CurrencyCode(m.Currency),
		Category:        entity.Category(m.Category),
		Period:          entity.Granularity(m.Period),
		RolloverEnabled: m.RolloverEnabled,
		RolloverAmount:  m.RolloverAmount,
		AlertThreshold:  m.AlertThreshold,
		StartDate:       m.StartDate,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:              budget.ID,
		Name:            budget.Name,
		Amount:          budget.Amount,
		Currency:        string(budget.Currency),
		Category:        string(budget.Category),
		Period:          string(budget.Period),
		RolloverEnabled: budget.RolloverEnabled,
		RolloverAmount:  budget.RolloverAmount,
		AlertThreshold:  budget.AlertThreshold,
		StartDate:       budget.StartDate,
		IsActive:        budget.IsActive,
		CreatedAt:       budget.CreatedAt,
		UpdatedAt:       budget.UpdatedAt,
	}
}
