// Package rate caches exchange-rate snapshots and converts amounts between currencies.
package rate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/finance-tracker/obligations/internal/application/adapter"
	"github.com/finance-tracker/obligations/internal/domain/entity"
	domainerror "github.com/finance-tracker/obligations/internal/domain/error"
	"github.com/finance-tracker/obligations/internal/domain/valueobject"
)

// Quote is a snapshot together with how it was obtained.
type Quote struct {
	Snapshot *entity.RateSnapshot
	// Stale is set when the snapshot was served because a fresh one could not be fetched.
	Stale    bool
	Warnings []valueobject.Warning
}

// CacheConfig holds configuration for the rate cache.
type CacheConfig struct {
	TTL          time.Duration
	FetchTimeout time.Duration
}

// DefaultCacheConfig returns the default cache configuration.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:          time.Hour,
		FetchTimeout: 10 * time.Second,
	}
}

// Cache serves rate snapshots per base currency. Reads are concurrent, and
// concurrent fetches for the same base share one request to the source.
type Cache struct {
	source       adapter.RateSource
	store        adapter.RateSnapshotStore
	ttl          time.Duration
	fetchTimeout time.Duration

	mu        sync.RWMutex
	snapshots map[entity.CurrencyCode]*entity.RateSnapshot
	inflight  singleflight.Group
}

// NewCache creates a new rate cache. store may be nil, in which case only
// the in-memory copy is used as the fallback.
func NewCache(source adapter.RateSource, store adapter.RateSnapshotStore, config CacheConfig) *Cache {
	if config.TTL <= 0 {
		config.TTL = DefaultCacheConfig().TTL
	}
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = DefaultCacheConfig().FetchTimeout
	}

	return &Cache{
		source:       source,
		store:        store,
		ttl:          config.TTL,
		fetchTimeout: config.FetchTimeout,
		snapshots:    make(map[entity.CurrencyCode]*entity.RateSnapshot),
	}
}

// TTL returns the age after which a snapshot is considered stale.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// IsStale reports whether snapshot is older than ttl at now.
func IsStale(snapshot *entity.RateSnapshot, ttl time.Duration, now time.Time) bool {
	return snapshot.Age(now) > ttl
}

// Snapshot returns the in-memory snapshot for base without fetching.
func (c *Cache) Snapshot(base entity.CurrencyCode) (*entity.RateSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot, ok := c.snapshots[base]
	return snapshot, ok
}

// Get returns the cached snapshot for base when it is fresh at now and
// fetches a new one otherwise.
func (c *Cache) Get(ctx context.Context, base entity.CurrencyCode, now time.Time) (*Quote, error) {
	if snapshot := c.lastKnown(ctx, base); snapshot != nil && !IsStale(snapshot, c.ttl, now) {
		return &Quote{Snapshot: snapshot}, nil
	}
	return c.Fetch(ctx, base)
}

// Fetch asks the source for a new snapshot for base and replaces the cached one.
// When the fetch fails, or ctx ends before it completes, the last known
// snapshot is returned with a stale_fallback warning. Without one the error
// wraps domainerror.ErrNetworkFailure.
func (c *Cache) Fetch(ctx context.Context, base entity.CurrencyCode) (*Quote, error) {
	result := c.inflight.DoChan(string(base), func() (interface{}, error) {
		return c.fetch(base)
	})

	select {
	case res := <-result:
		if res.Err != nil {
			return c.fallback(ctx, base, res.Err)
		}
		return &Quote{Snapshot: res.Val.(*entity.RateSnapshot)}, nil
	case <-ctx.Done():
		return c.fallback(ctx, base, ctx.Err())
	}
}

// fetch runs once per base at a time. It is detached from any single
// caller's context so that callers giving up early do not cancel it for the rest.
func (c *Cache) fetch(base entity.CurrencyCode) (*entity.RateSnapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.fetchTimeout)
	defer cancel()

	snapshot, err := c.source.FetchRates(ctx, base)
	if err != nil {
		return nil, err
	}
	if snapshot == nil || snapshot.Base() != base {
		return nil, domainerror.NewRateError(
			domainerror.ErrCodeInvalidRatePayload,
			"rate source returned a snapshot for the wrong base currency",
			domainerror.ErrInvalidRatePayload,
		)
	}

	c.mu.Lock()
	c.snapshots[base] = snapshot
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.Save(ctx, snapshot); err != nil {
			slog.Warn("Failed to persist rate snapshot", "base", base, "error", err)
		}
	}

	slog.Info("Exchange rates refreshed",
		"base", base,
		"rates", len(snapshot.Rates()),
		"timestamp", snapshot.Timestamp(),
	)
	return snapshot, nil
}

func (c *Cache) fallback(ctx context.Context, base entity.CurrencyCode, cause error) (*Quote, error) {
	snapshot := c.lastKnown(ctx, base)
	if snapshot == nil {
		slog.Error("Exchange rates unavailable", "base", base, "error", cause)
		return nil, domainerror.NewRateError(
			domainerror.ErrCodeNetworkFailure,
			"no exchange rates available for "+string(base),
			fmt.Errorf("%w: %v", domainerror.ErrNetworkFailure, cause),
		)
	}

	slog.Warn("Rate fetch failed, using last known snapshot",
		"base", base,
		"snapshot_time", snapshot.Timestamp(),
		"error", cause,
	)
	return &Quote{
		Snapshot: snapshot,
		Stale:    true,
		Warnings: []valueobject.Warning{valueobject.NewStaleFallbackWarning(base)},
	}, nil
}

// lastKnown returns the in-memory snapshot, falling back to the store and
// keeping what it finds there in memory.
func (c *Cache) lastKnown(ctx context.Context, base entity.CurrencyCode) *entity.RateSnapshot {
	if snapshot, ok := c.Snapshot(base); ok {
		return snapshot
	}
	if c.store == nil {
		return nil
	}

	loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
	defer cancel()

	snapshot, err := c.store.Load(loadCtx, base)
	if err != nil || snapshot == nil {
		return nil
	}

	c.mu.Lock()
	// A concurrent fetch may have stored a newer snapshot meanwhile.
	if current, ok := c.snapshots[base]; ok {
		snapshot = current
	} else {
		c.snapshots[base] = snapshot
	}
	c.mu.Unlock()

	return snapshot
}
