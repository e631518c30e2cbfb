// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-tracker/obligations/internal/domain/entity"
)

// RateSource fetches the current conversion rates relative to a base currency.
type RateSource interface {
	// FetchRates returns a fresh snapshot for base or an error.
	FetchRates(ctx context.Context, base entity.CurrencyCode) (*entity.RateSnapshot, error)
}

// RateSnapshotStore keeps the last known snapshot per base currency so it
// survives restarts and can be shared between instances.
type RateSnapshotStore interface {
	// Save replaces the stored snapshot for the snapshot's base currency.
	Save(ctx context.Context, snapshot *entity.RateSnapshot) error

	// Load returns the stored snapshot for base, or domainerror.ErrRateSnapshotNotFound.
	Load(ctx context.Context, base entity.CurrencyCode) (*entity.RateSnapshot, error)
}
