// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Transaction represents a single money movement counted against budgets.
type Transaction struct {
	ID          uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal // Always positive; direction is given by Type
	Currency    CurrencyCode
	Type        TransactionType
	Category    Category
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	date time.Time,
	description string,
	amount decimal.Decimal,
	currency CurrencyCode,
	transactionType TransactionType,
	category Category,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		Date:        date,
		Description: description,
		Amount:      amount,
		Currency:    currency,
		Type:        transactionType,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Money returns the transaction amount as Money.
func (t Transaction) Money() Money {
	return NewMoney(t.Amount, t.Currency)
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}
