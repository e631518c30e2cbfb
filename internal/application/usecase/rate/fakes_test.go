package rate

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/domain/entity"
	domainerror "github.com/finance-tracker/obligations/internal/domain/error"
)

type fakeSource struct {
	mu        sync.Mutex
	calls     int
	snapshots map[entity.CurrencyCode]*entity.RateSnapshot
	err       error
	block     chan struct{}
	started   chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{snapshots: make(map[entity.CurrencyCode]*entity.RateSnapshot)}
}

func (f *fakeSource) FetchRates(ctx context.Context, base entity.CurrencyCode) (*entity.RateSnapshot, error) {
	f.mu.Lock()
	f.calls++
	block, started, err, snapshot := f.block, f.started, f.err, f.snapshots[base]
	f.mu.Unlock()

	if started != nil {
		select {
		case started <- struct{}{}:
		default:
		}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (f *fakeSource) set(snapshot *entity.RateSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots[snapshot.Base()] = snapshot
}

func (f *fakeSource) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeStore struct {
	mu        sync.Mutex
	snapshots map[entity.CurrencyCode]*entity.RateSnapshot
}

func newFakeStore() *fakeStore {
	return &fakeStore{snapshots: make(map[entity.CurrencyCode]*entity.RateSnapshot)}
}

func (s *fakeStore) Save(_ context.Context, snapshot *entity.RateSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshot.Base()] = snapshot
	return nil
}

func (s *fakeStore) Load(_ context.Context, base entity.CurrencyCode) (*entity.RateSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.snapshots[base]
	if !ok {
		return nil, domainerror.ErrRateSnapshotNotFound
	}
	return snapshot, nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func usdSnapshot(at time.Time) *entity.RateSnapshot {
	return entity.NewRateSnapshot(entity.CurrencyUSD, map[entity.CurrencyCode]decimal.Decimal{
		entity.CurrencyUSD: decimal.NewFromInt(1),
		entity.CurrencyEUR: decimal.RequireFromString("0.92"),
		entity.CurrencyGBP: decimal.RequireFromString("0.79"),
		entity.CurrencyGEL: decimal.RequireFromString("2.71"),
		entity.CurrencyJPY: decimal.RequireFromString("149.5"),
	}, at)
}
