// Package rate caches exchange-rate snapshots and converts amounts between currencies.
package rate

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/domain/entity"
	domainerror "github.com/finance-tracker/obligations/internal/domain/error"
)

// Converter converts amounts using a given snapshot.
type Converter interface {
	Convert(amount decimal.Decimal, from, to entity.CurrencyCode, snapshot *entity.RateSnapshot) (decimal.Decimal, error)
}

// SnapshotConverter implements Converter with Convert.
type SnapshotConverter struct{}

// Convert implements Converter.
func (SnapshotConverter) Convert(amount decimal.Decimal, from, to entity.CurrencyCode, snapshot *entity.RateSnapshot) (decimal.Decimal, error) {
	return Convert(amount, from, to, snapshot)
}

// Convert returns amount * rate(to) / rate(from), with both rates taken
// relative to the snapshot base. Same-currency conversion returns amount
// unchanged and needs no snapshot.
func Convert(amount decimal.Decimal, from, to entity.CurrencyCode, snapshot *entity.RateSnapshot) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	fromRate, err := lookup(snapshot, from)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := lookup(snapshot, to)
	if err != nil {
		return decimal.Zero, err
	}

	return amount.Mul(toRate).Div(fromRate), nil
}

// ConvertMoney converts m into the target currency.
func ConvertMoney(m entity.Money, to entity.CurrencyCode, snapshot *entity.RateSnapshot) (entity.Money, error) {
	amount, err := Convert(m.Amount, m.Currency, to, snapshot)
	if err != nil {
		return entity.Money{}, err
	}
	return entity.NewMoney(amount, to), nil
}

func lookup(snapshot *entity.RateSnapshot, code entity.CurrencyCode) (decimal.Decimal, error) {
	if snapshot == nil {
		return decimal.Zero, missingRate(code)
	}
	rate, ok := snapshot.Rate(code)
	if !ok || !rate.IsPositive() {
		return decimal.Zero, missingRate(code)
	}
	return rate, nil
}

func missingRate(code entity.CurrencyCode) error {
	return domainerror.NewRateError(
		domainerror.ErrCodeMissingRate,
		"no rate for "+string(code),
		domainerror.ErrMissingRate,
	)
}
