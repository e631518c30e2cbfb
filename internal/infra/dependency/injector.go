// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/obligations/config"
	"github.com/finance-tracker/obligations/internal/application/adapter"
	"github.com/finance-tracker/obligations/internal/application/usecase/billing"
	"github.com/finance-tracker/obligations/internal/application/usecase/budget"
	"github.com/finance-tracker/obligations/internal/application/usecase/lock"
	"github.com/finance-tracker/obligations/internal/application/usecase/period"
	"github.com/finance-tracker/obligations/internal/application/usecase/rate"
	"github.com/finance-tracker/obligations/internal/application/usecase/utility"
	"github.com/finance-tracker/obligations/internal/domain/entity"
	"github.com/finance-tracker/obligations/internal/domain/valueobject"
	"github.com/finance-tracker/obligations/internal/infra/server/router"
	"github.com/finance-tracker/obligations/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/obligations/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/obligations/internal/integration/persistence"
	"github.com/finance-tracker/obligations/internal/integration/ratesync"
)

// Injector holds all application dependencies.
type Injector struct {
	Config     *config.Config
	DB         *gorm.DB
	Redis      *redis.Client
	RateCache  *rate.Cache
	RateWorker *ratesync.Worker
	Router     *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// db and redisClient may be nil: without a database only the rate routes are
// served, and without redis snapshots are kept in memory only.
func NewInjector(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	rateSource adapter.RateSource,
	clock adapter.Clock,
) *Injector {
	rateBase := parseCurrencyOr(cfg.Rates.BaseCurrency, entity.CurrencyUSD)
	calendar := valueobject.NewCalendar(cfg.Calendar.Location, cfg.Calendar.WeekStart)

	// Create the rate cache, backed by redis when available
	var snapshotStore adapter.RateSnapshotStore
	if redisClient != nil {
		snapshotStore = persistence.NewRateSnapshotStore(redisClient)
	}
	rateCache := rate.NewCache(rateSource, snapshotStore, rate.CacheConfig{
		TTL:          cfg.Rates.TTL,
		FetchTimeout: cfg.Rates.FetchTimeout,
	})

	// Create rate use cases and controller
	getRatesUseCase := rate.NewGetRatesUseCase(rateCache, clock)
	convertUseCase := rate.NewConvertAmountUseCase(rateCache, clock, rateBase)
	rateController := controller.NewRateController(getRatesUseCase, convertUseCase)

	// Create the background refresher
	refreshBases := make([]entity.CurrencyCode, 0, len(cfg.Rates.RefreshBases))
	for _, raw := range cfg.Rates.RefreshBases {
		code, err := entity.ParseCurrencyCode(raw)
		if err != nil {
			slog.Warn("Skipping unsupported refresh base", "base", raw)
			continue
		}
		refreshBases = append(refreshBases, code)
	}
	rateWorker := ratesync.NewWorker(rateCache, ratesync.WorkerConfig{
		Interval: cfg.Rates.RefreshInterval,
		Bases:    refreshBases,
	})

	healthController := controller.NewHealthController(databaseChecker(db), redisChecker(redisClient))

	var budgetController *controller.BudgetController
	var subscriptionController *controller.SubscriptionController
	var utilityController *controller.UtilityController

	if db != nil {
		// Create repositories
		budgetRepo := persistence.NewBudgetRepository(db)
		transactionRepo := persistence.NewTransactionRepository(db)
		subscriptionRepo := persistence.NewSubscriptionRepository(db)
		utilityRepo := persistence.NewUtilityAccountRepository(db)

		// Writers of one owner's history are serialized by id
		locks := lock.NewKeyedMutex()
		aggregator := budget.NewAggregator(period.NewCalculator(calendar))

		// Create budget use cases
		getSummaryUseCase := budget.NewGetBudgetSummaryUseCase(budgetRepo, transactionRepo, rateCache, aggregator, clock, rateBase)
		listSummariesUseCase := budget.NewListBudgetSummariesUseCase(budgetRepo, transactionRepo, rateCache, aggregator, clock, rateBase)
		rolloverUseCase := budget.NewApplyRolloverUseCase(budgetRepo, transactionRepo, rateCache, aggregator, clock, rateBase)

		// Create subscription use cases
		overviewUseCase := billing.NewGetSubscriptionOverviewUseCase(subscriptionRepo, rateCache, clock, calendar, rateBase, cfg.Subscriptions.UpcomingDays)
		statusUseCase := billing.NewGetSubscriptionStatusUseCase(subscriptionRepo, clock, calendar)
		markPaidUseCase := billing.NewMarkSubscriptionPaidUseCase(subscriptionRepo, clock, calendar, locks)

		// Create utility use cases
		recordPaymentUseCase := utility.NewRecordUtilityPaymentUseCase(utilityRepo, clock, locks)
		removePaymentUseCase := utility.NewRemoveUtilityPaymentUseCase(utilityRepo, clock, locks)
		recordReadingUseCase := utility.NewRecordMeterReadingUseCase(utilityRepo, clock, locks)
		consumptionUseCase := utility.NewGetConsumptionUseCase(utilityRepo)

		// Create controllers
		budgetController = controller.NewBudgetController(getSummaryUseCase, listSummariesUseCase, rolloverUseCase)
		subscriptionController = controller.NewSubscriptionController(overviewUseCase, statusUseCase, markPaidUseCase, rateBase)
		utilityController = controller.NewUtilityController(recordPaymentUseCase, removePaymentUseCase, recordReadingUseCase, consumptionUseCase)
	} else {
		slog.Warn("Budget, subscription and utility routes disabled without a database")
	}

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var refreshRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		refreshRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute, "base")
	} else {
		refreshRateLimiter = middleware.NewRateLimiterWithConfig(5, 1*time.Minute, "base")
	}

	// Create router
	r := router.NewRouter(
		healthController,
		budgetController,
		subscriptionController,
		utilityController,
		rateController,
		refreshRateLimiter,
	)

	return &Injector{
		Config:     cfg,
		DB:         db,
		Redis:      redisClient,
		RateCache:  rateCache,
		RateWorker: rateWorker,
		Router:     r,
	}
}

func parseCurrencyOr(raw string, fallback entity.CurrencyCode) entity.CurrencyCode {
	code, err := entity.ParseCurrencyCode(raw)
	if err != nil {
		slog.Warn("Unsupported base currency, using fallback", "base", raw, "fallback", fallback)
		return fallback
	}
	return code
}

func databaseChecker(db *gorm.DB) func() bool {
	if db == nil {
		return nil
	}
	return func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}
}

func redisChecker(client *redis.Client) func() bool {
	if client == nil {
		return nil
	}
	return func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(ctx).Err() == nil
	}
}
