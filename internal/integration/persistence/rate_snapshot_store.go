// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/application/adapter"
	"github.com/finance-tracker/obligations/internal/domain/entity"
	domainerror "github.com/finance-tracker/obligations/internal/domain/error"
)

// rateSnapshotKeyPrefix prefixes the redis key of each base currency's snapshot.
const rateSnapshotKeyPrefix = "rates:snapshot:"

// rateSnapshotRecord is the JSON form of a snapshot stored in redis.
type rateSnapshotRecord struct {
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	Timestamp time.Time                  `json:"timestamp"`
}

// rateSnapshotStore implements the adapter.RateSnapshotStore interface on redis.
// Keys never expire: the stored snapshot is the fallback when fetches fail.
type rateSnapshotStore struct {
	client *redis.Client
}

// NewRateSnapshotStore creates a new redis-backed rate snapshot store.
func NewRateSnapshotStore(client *redis.Client) adapter.RateSnapshotStore {
	return &rateSnapshotStore{
		client: client,
	}
}

// Save replaces the stored snapshot for the snapshot's base currency.
func (s *rateSnapshotStore) Save(ctx context.Context, snapshot *entity.RateSnapshot) error {
	record := rateSnapshotRecord{
		Base:      string(snapshot.Base()),
		Rates:     make(map[string]decimal.Decimal),
		Timestamp: snapshot.Timestamp().UTC(),
	}
	for code, rate := range snapshot.Rates() {
		record.Rates[string(code)] = rate
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode rate snapshot: %w", err)
	}

	if err := s.client.Set(ctx, rateSnapshotKey(snapshot.Base()), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to store rate snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot for base.
func (s *rateSnapshotStore) Load(ctx context.Context, base entity.CurrencyCode) (*entity.RateSnapshot, error) {
	payload, err := s.client.Get(ctx, rateSnapshotKey(base)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainerror.ErrRateSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load rate snapshot: %w", err)
	}

	var record rateSnapshotRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("failed to decode rate snapshot: %w", err)
	}

	rates := make(map[entity.CurrencyCode]decimal.Decimal, len(record.Rates))
	for code, rate := range record.Rates {
		rates[entity.CurrencyCode(code)] = rate
	}
	return entity.NewRateSnapshot(entity.CurrencyCode(record.Base), rates, record.Timestamp), nil
}

func rateSnapshotKey(base entity.CurrencyCode) string {
	return rateSnapshotKeyPrefix + string(base)
}
