// Package rate caches exchange-rate snapshots and converts amounts between currencies.
package rate

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/application/adapter"
	"github.com/finance-tracker/obligations/internal/domain/entity"
	"github.com/finance-tracker/obligations/internal/domain/valueobject"
)

// ConvertAmountInput represents the input for a currency conversion.
type ConvertAmountInput struct {
	Amount decimal.Decimal
	From   entity.CurrencyCode
	To     entity.CurrencyCode
}

// ConvertAmountOutput represents the output of a currency conversion.
type ConvertAmountOutput struct {
	Result       entity.Money
	Rate         decimal.Decimal // Units of To per unit of From
	SnapshotBase entity.CurrencyCode
	SnapshotTime time.Time
	Warnings     []valueobject.Warning
}

// ConvertAmountUseCase converts an amount using the cached snapshot of the configured base.
type ConvertAmountUseCase struct {
	cache *Cache
	clock adapter.Clock
	base  entity.CurrencyCode
}

// NewConvertAmountUseCase creates a new ConvertAmountUseCase instance.
func NewConvertAmountUseCase(cache *Cache, clock adapter.Clock, base entity.CurrencyCode) *ConvertAmountUseCase {
	return &ConvertAmountUseCase{
		cache: cache,
		clock: clock,
		base:  base,
	}
}

// Execute performs the conversion.
func (uc *ConvertAmountUseCase) Execute(ctx context.Context, input ConvertAmountInput) (*ConvertAmountOutput, error) {
	if input.From == input.To {
		return &ConvertAmountOutput{
			Result: entity.NewMoney(input.Amount, input.To),
			Rate:   decimal.NewFromInt(1),
		}, nil
	}

	quote, err := uc.cache.Get(ctx, uc.base, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	converted, err := Convert(input.Amount, input.From, input.To, quote.Snapshot)
	if err != nil {
		return nil, err
	}
	rate, err := Convert(decimal.NewFromInt(1), input.From, input.To, quote.Snapshot)
	if err != nil {
		return nil, err
	}

	return &ConvertAmountOutput{
		Result:       entity.NewMoney(converted, input.To),
		Rate:         rate,
		SnapshotBase: quote.Snapshot.Base(),
		SnapshotTime: quote.Snapshot.Timestamp(),
		Warnings:     quote.Warnings,
	}, nil
}
