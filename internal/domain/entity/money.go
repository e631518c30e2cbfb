// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a decimal amount in a specific currency.
// Values are never mutated; every operation returns a new Money.
type Money struct {
	Amount   decimal.Decimal
	Currency CurrencyCode
}

// NewMoney creates a Money value.
func NewMoney(amount decimal.Decimal, currency CurrencyCode) Money {
	return Money{Amount: amount, Currency: currency}
}

// Zero returns a zero amount in the given currency.
func Zero(currency CurrencyCode) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

// Add returns m + other. Both values must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("cannot add %s to %s", other.Currency, m.Currency)
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Sub returns m - other. Both values must share a currency.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("cannot subtract %s from %s", other.Currency, m.Currency)
	}
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}, nil
}

// Mul scales the amount by factor.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(factor), Currency: m.Currency}
}

// Round rounds the amount to the currency's minor units.
func (m Money) Round() Money {
	return Money{Amount: m.Amount.Round(m.Currency.Info().MinorUnits), Currency: m.Currency}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// String renders the amount with its currency code, e.g. "92.00 EUR".
func (m Money) String() string {
	return m.Amount.StringFixed(m.Currency.Info().MinorUnits) + " " + string(m.Currency)
}
