// Package ratesync keeps the exchange-rate cache warm in the background.
package ratesync

import (
	"context"
	"log/slog"
	"time"

	"github.com/finance-tracker/obligations/internal/application/usecase/rate"
	"github.com/finance-tracker/obligations/internal/domain/entity"
)

// Refresher fetches a new snapshot for a base currency. *rate.Cache implements it.
type Refresher interface {
	Fetch(ctx context.Context, base entity.CurrencyCode) (*rate.Quote, error)
}

// WorkerConfig holds configuration for the rate refresh worker.
type WorkerConfig struct {
	Interval time.Duration
	Bases    []entity.CurrencyCode
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		Interval: time.Hour,
		Bases:    []entity.CurrencyCode{entity.CurrencyUSD},
	}
}

// Worker refreshes the configured base currencies on a fixed interval.
type Worker struct {
	refresher Refresher
	interval  time.Duration
	bases     []entity.CurrencyCode
}

// NewWorker creates a new rate refresh worker.
func NewWorker(refresher Refresher, config WorkerConfig) *Worker {
	if config.Interval <= 0 {
		config.Interval = DefaultWorkerConfig().Interval
	}

	return &Worker{
		refresher: refresher,
		interval:  config.Interval,
		bases:     append([]entity.CurrencyCode(nil), config.Bases...),
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Rate refresh worker started",
		"interval", w.interval,
		"bases", w.bases,
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Refresh immediately on start, then on ticker
	w.refreshAll(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Rate refresh worker shutting down")
			return
		case <-ticker.C:
			w.refreshAll(ctx)
		}
	}
}

// RefreshNow refreshes every configured base once.
func (w *Worker) RefreshNow(ctx context.Context) {
	w.refreshAll(ctx)
}

func (w *Worker) refreshAll(ctx context.Context) {
	for _, base := range w.bases {
		select {
		case <-ctx.Done():
			return
		default:
			w.refresh(ctx, base)
		}
	}
}

func (w *Worker) refresh(ctx context.Context, base entity.CurrencyCode) {
	quote, err := w.refresher.Fetch(ctx, base)
	if err != nil {
		slog.Error("Failed to refresh exchange rates", "base", base, "error", err)
		return
	}
	if quote.Stale {
		slog.Warn("Exchange rate refresh kept stale snapshot",
			"base", base,
			"snapshot_time", quote.Snapshot.Timestamp(),
		)
		return
	}

	slog.Debug("Exchange rate refresh completed", "base", base)
}
