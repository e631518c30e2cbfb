package rate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/obligations/internal/domain/entity"
	domainerror "github.com/finance-tracker/obligations/internal/domain/error"
	"github.com/finance-tracker/obligations/internal/domain/valueobject"
)

var errUpstream = errors.New("upstream unavailable")

func testConfig() CacheConfig {
	return CacheConfig{TTL: time.Hour, FetchTimeout: time.Second}
}

func TestIsStale(t *testing.T) {
	t0 := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	snapshot := usdSnapshot(t0)
	ttl := 3600 * time.Second

	assert.False(t, IsStale(snapshot, ttl, t0))
	assert.False(t, IsStale(snapshot, ttl, t0.Add(3600*time.Second)))
	assert.True(t, IsStale(snapshot, ttl, t0.Add(3601*time.Second)))
	assert.Equal(t, 3601*time.Second, snapshot.Age(t0.Add(3601*time.Second)))
}

func TestCache_FetchStoresSnapshot(t *testing.T) {
	source := newFakeSource()
	store := newFakeStore()
	snapshot := usdSnapshot(time.Now())
	source.set(snapshot)
	cache := NewCache(source, store, testConfig())

	quote, err := cache.Fetch(context.Background(), entity.CurrencyUSD)
	require.NoError(t, err)
	assert.Same(t, snapshot, quote.Snapshot)
	assert.False(t, quote.Stale)
	assert.Empty(t, quote.Warnings)

	cached, ok := cache.Snapshot(entity.CurrencyUSD)
	require.True(t, ok)
	assert.Same(t, snapshot, cached)

	stored, err := store.Load(context.Background(), entity.CurrencyUSD)
	require.NoError(t, err)
	assert.Same(t, snapshot, stored)
}

func TestCache_FetchReplacesPriorSnapshot(t *testing.T) {
	source := newFakeSource()
	cache := NewCache(source, nil, testConfig())

	first := usdSnapshot(time.Now().Add(-2 * time.Hour))
	source.set(first)
	_, err := cache.Fetch(context.Background(), entity.CurrencyUSD)
	require.NoError(t, err)

	second := usdSnapshot(time.Now())
	source.set(second)
	_, err = cache.Fetch(context.Background(), entity.CurrencyUSD)
	require.NoError(t, err)

	cached, ok := cache.Snapshot(entity.CurrencyUSD)
	require.True(t, ok)
	assert.Same(t, second, cached)
}

func TestCache_FetchFailureFallsBackToCachedSnapshot(t *testing.T) {
	source := newFakeSource()
	snapshot := usdSnapshot(time.Now())
	source.set(snapshot)
	cache := NewCache(source, nil, testConfig())

	_, err := cache.Fetch(context.Background(), entity.CurrencyUSD)
	require.NoError(t, err)

	source.fail(errUpstream)
	quote, err := cache.Fetch(context.Background(), entity.CurrencyUSD)
	require.NoError(t, err)
	assert.Same(t, snapshot, quote.Snapshot)
	assert.True(t, quote.Stale)
	require.Len(t, quote.Warnings, 1)
	assert.Equal(t, valueobject.WarningStaleFallback, quote.Warnings[0].Code)
}

func TestCache_FetchFailureWithoutSnapshotIsNetworkFailure(t *testing.T) {
	source := newFakeSource()
	source.fail(errUpstream)
	cache := NewCache(source, newFakeStore(), testConfig())

	quote, err := cache.Fetch(context.Background(), entity.CurrencyEUR)
	assert.Nil(t, quote)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerror.ErrNetworkFailure))

	var rateErr *domainerror.RateError
	require.True(t, errors.As(err, &rateErr))
	assert.Equal(t, domainerror.ErrCodeNetworkFailure, rateErr.Code)
}

func TestCache_FetchFailureFallsBackToStore(t *testing.T) {
	source := newFakeSource()
	source.fail(errUpstream)
	store := newFakeStore()
	persisted := usdSnapshot(time.Now().Add(-24 * time.Hour))
	require.NoError(t, store.Save(context.Background(), persisted))
	cache := NewCache(source, store, testConfig())

	quote, err := cache.Fetch(context.Background(), entity.CurrencyUSD)
	require.NoError(t, err)
	assert.Same(t, persisted, quote.Snapshot)
	assert.True(t, quote.Stale)

	cached, ok := cache.Snapshot(entity.CurrencyUSD)
	require.True(t, ok)
	assert.Same(t, persisted, cached)
}

func TestCache_FetchRejectsSnapshotForOtherBase(t *testing.T) {
	source := newFakeSource()
	source.snapshots[entity.CurrencyEUR] = usdSnapshot(time.Now())
	cache := NewCache(source, nil, testConfig())

	_, err := cache.Fetch(context.Background(), entity.CurrencyEUR)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerror.ErrNetworkFailure))
}

func TestCache_GetServesFreshSnapshotWithoutFetching(t *testing.T) {
	t0 := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	source := newFakeSource()
	source.set(usdSnapshot(t0))
	cache := NewCache(source, nil, testConfig())

	_, err := cache.Get(context.Background(), entity.CurrencyUSD, t0)
	require.NoError(t, err)
	require.Equal(t, 1, source.callCount())

	quote, err := cache.Get(context.Background(), entity.CurrencyUSD, t0.Add(30*time.Minute))
	require.NoError(t, err)
	assert.False(t, quote.Stale)
	assert.Equal(t, 1, source.callCount())
}

func TestCache_GetRefetchesStaleSnapshot(t *testing.T) {
	t0 := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	source := newFakeSource()
	source.set(usdSnapshot(t0))
	cache := NewCache(source, nil, testConfig())

	_, err := cache.Get(context.Background(), entity.CurrencyUSD, t0)
	require.NoError(t, err)

	fresh := usdSnapshot(t0.Add(2 * time.Hour))
	source.set(fresh)
	quote, err := cache.Get(context.Background(), entity.CurrencyUSD, t0.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Same(t, fresh, quote.Snapshot)
	assert.Equal(t, 2, source.callCount())
}

func TestCache_GetStaleSnapshotWithFailingSourceWarns(t *testing.T) {
	t0 := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	source := newFakeSource()
	snapshot := usdSnapshot(t0)
	source.set(snapshot)
	cache := NewCache(source, nil, CacheConfig{TTL: 3600 * time.Second, FetchTimeout: time.Second})

	_, err := cache.Get(context.Background(), entity.CurrencyUSD, t0)
	require.NoError(t, err)

	source.fail(errUpstream)
	later := t0.Add(3601 * time.Second)
	require.True(t, IsStale(snapshot, cache.TTL(), later))

	quote, err := cache.Get(context.Background(), entity.CurrencyUSD, later)
	require.NoError(t, err)
	assert.Same(t, snapshot, quote.Snapshot)
	assert.True(t, quote.Stale)
	require.Len(t, quote.Warnings, 1)
	assert.Equal(t, valueobject.WarningStaleFallback, quote.Warnings[0].Code)
}

func TestCache_ConcurrentFetchesAreCoalesced(t *testing.T) {
	source := newFakeSource()
	snapshot := usdSnapshot(time.Now())
	source.set(snapshot)
	source.block = make(chan struct{})
	source.started = make(chan struct{}, 1)
	cache := NewCache(source, nil, CacheConfig{TTL: time.Hour, FetchTimeout: 5 * time.Second})

	const callers = 16
	var wg sync.WaitGroup
	quotes := make([]*Quote, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			quotes[i], errs[i] = cache.Fetch(context.Background(), entity.CurrencyUSD)
		}(i)
	}

	select {
	case <-source.started:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch never started")
	}
	// Give every caller time to join the in-flight fetch before it completes.
	time.Sleep(100 * time.Millisecond)
	close(source.block)
	wg.Wait()

	assert.Equal(t, 1, source.callCount())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, snapshot, quotes[i].Snapshot)
	}
}

func TestCache_FetchesForDifferentBasesAreIndependent(t *testing.T) {
	source := newFakeSource()
	source.set(usdSnapshot(time.Now()))
	source.set(entity.NewRateSnapshot(entity.CurrencyEUR, nil, time.Now()))
	cache := NewCache(source, nil, testConfig())

	_, err := cache.Fetch(context.Background(), entity.CurrencyUSD)
	require.NoError(t, err)
	_, err = cache.Fetch(context.Background(), entity.CurrencyEUR)
	require.NoError(t, err)

	assert.Equal(t, 2, source.callCount())
}

func TestCache_CallerTimeoutFallsBackToCachedSnapshot(t *testing.T) {
	source := newFakeSource()
	snapshot := usdSnapshot(time.Now())
	source.set(snapshot)
	cache := NewCache(source, nil, CacheConfig{TTL: time.Hour, FetchTimeout: 5 * time.Second})

	_, err := cache.Fetch(context.Background(), entity.CurrencyUSD)
	require.NoError(t, err)

	source.mu.Lock()
	source.block = make(chan struct{})
	source.mu.Unlock()
	defer close(source.block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	quote, err := cache.Fetch(ctx, entity.CurrencyUSD)
	require.NoError(t, err)
	assert.Same(t, snapshot, quote.Snapshot)
	assert.True(t, quote.Stale)
}

func TestCache_CallerTimeoutWithoutSnapshotFails(t *testing.T) {
	source := newFakeSource()
	source.set(usdSnapshot(time.Now()))
	source.block = make(chan struct{})
	defer close(source.block)
	cache := NewCache(source, nil, CacheConfig{TTL: time.Hour, FetchTimeout: 5 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := cache.Fetch(ctx, entity.CurrencyUSD)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerror.ErrNetworkFailure))
}
