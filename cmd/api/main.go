// Package main is the entry point for the obligations API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/obligations/config"
	"github.com/finance-tracker/obligations/internal/application/adapter"
	"github.com/finance-tracker/obligations/internal/infra/cache"
	"github.com/finance-tracker/obligations/internal/infra/db"
	"github.com/finance-tracker/obligations/internal/infra/dependency"
	"github.com/finance-tracker/obligations/internal/integration/adapters"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting obligations API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"rate_base", cfg.Rates.BaseCurrency,
		"timezone", cfg.Calendar.Location.String(),
	)

	// Initialize database connection
	var gormDB *gorm.DB
	database, err := db.NewPostgresConnection(&cfg.Database, cfg.Server.Environment)
	if err != nil {
		slog.Warn("Database connection failed, running without database",
			"error", err,
		)
	} else {
		// Run database migrations
		if err := database.Migrate(); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}

		gormDB = database.DB()
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()
	}

	// Initialize redis connection for the shared rate snapshots
	var redisClient *redis.Client
	redisClient, err = cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		slog.Warn("Redis connection failed, rate snapshots kept in memory only",
			"error", err,
		)
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("Failed to close redis connection", "error", err)
			}
		}()
	}

	// Wire dependencies
	clock := adapter.SystemClock{}
	rateSource := adapters.NewExchangeRateClient(cfg.Rates.APIURL, cfg.Rates.FetchTimeout, clock)
	injector := dependency.NewInjector(cfg, gormDB, redisClient, rateSource, clock)

	// Start the background rate refresher
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	if cfg.Rates.RefreshEnabled {
		go injector.RateWorker.Start(workerCtx)
	} else {
		slog.Info("Rate refresh worker disabled")
	}

	// Setup router
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
