// Package rate caches exchange-rate snapshots and converts amounts between currencies.
package rate

import (
	"context"

	"github.com/finance-tracker/obligations/internal/application/adapter"
	"github.com/finance-tracker/obligations/internal/domain/entity"
	"github.com/finance-tracker/obligations/internal/domain/valueobject"
)

// GetRatesInput represents the input for reading the rates of a base currency.
type GetRatesInput struct {
	Base    entity.CurrencyCode
	Refresh bool // Bypass the TTL and fetch now
}

// GetRatesOutput represents the output of reading rates.
type GetRatesOutput struct {
	Snapshot *entity.RateSnapshot
	Stale    bool
	Warnings []valueobject.Warning
}

// GetRatesUseCase returns the current snapshot for a base currency.
type GetRatesUseCase struct {
	cache *Cache
	clock adapter.Clock
}

// NewGetRatesUseCase creates a new GetRatesUseCase instance.
func NewGetRatesUseCase(cache *Cache, clock adapter.Clock) *GetRatesUseCase {
	return &GetRatesUseCase{
		cache: cache,
		clock: clock,
	}
}

// Execute returns the snapshot, fetching when it is stale or a refresh is requested.
func (uc *GetRatesUseCase) Execute(ctx context.Context, input GetRatesInput) (*GetRatesOutput, error) {
	var (
		quote *Quote
		err   error
	)
	if input.Refresh {
		quote, err = uc.cache.Fetch(ctx, input.Base)
	} else {
		quote, err = uc.cache.Get(ctx, input.Base, uc.clock.Now())
	}
	if err != nil {
		return nil, err
	}

	return &GetRatesOutput{
		Snapshot: quote.Snapshot,
		Stale:    quote.Stale,
		Warnings: quote.Warnings,
	}, nil
}
