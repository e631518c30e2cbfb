// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/obligations/config"
	"github.com/finance-tracker/obligations/internal/infra/dependency"
	"github.com/finance-tracker/obligations/internal/integration/adapters"
	"github.com/finance-tracker/obligations/internal/integration/persistence/model"
	"github.com/finance-tracker/obligations/test/integration/mock"
)

// Shared across the suite; reset before every scenario.
var (
	testDB    *mock.Db
	testRedis *redis.Client
	rateAPI   *mock.ApiMock
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server   *httptest.Server
	client   *http.Client
	headers  map[string]string
	response *response

	// Collaborators
	db       *mock.Db
	redis    *redis.Client
	rateAPI  *mock.ApiMock
	timeMock *mock.Time
	injector *dependency.Injector

	// Named records created by Given steps and saved response fields
	ids  map[string]uuid.UUID
	vars map[string]string
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		_ = os.Setenv("ENV", "test")

		testDB = mock.NewDb(model.All()...)
		testRedis = mock.NewRedis()
		rateAPI = mock.NewApiServer()
		rateAPI.Start()
	})

	ctx.AfterSuite(func() {
		if rateAPI != nil {
			rateAPI.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &TestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		if err := tc.before(); err != nil {
			return ctx, fmt.Errorf("failed to prepare scenario %q: %w", sc.Name, err)
		}
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerClockSteps(ctx, tc)
	registerSeedSteps(ctx, tc)
	registerRateAPISteps(ctx, tc)
	registerRequestSteps(ctx, tc)
	registerResponseSteps(ctx, tc)
}

func (t *TestContext) before() error {
	t.db = testDB
	t.redis = testRedis
	t.rateAPI = rateAPI
	t.client = &http.Client{Timeout: 10 * time.Second}
	t.headers = make(map[string]string)
	t.response = nil
	t.ids = make(map[string]uuid.UUID)
	t.vars = make(map[string]string)
	t.timeMock = mock.NewTime()

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	if err := mock.ClearRedis(t.redis); err != nil {
		return err
	}
	t.rateAPI.Reset()

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Calendar.Location = time.UTC
	cfg.Calendar.WeekStart = time.Monday

	rateSource := adapters.NewExchangeRateClient(t.rateAPI.GetUrl(), 2*time.Second, t.timeMock)
	t.injector = dependency.NewInjector(cfg, t.db.DbConn, t.redis, rateSource, t.timeMock)
	t.server = httptest.NewServer(t.injector.Router.Setup(cfg.Server.Environment))

	return nil
}
