//go:build integration

// Package integration runs the obligations API scenarios end to end with godog.
package integration

import (
	"os"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/finance-tracker/obligations/test/integration/steps"
)

// TestFeatures runs every scenario under features/ against an in-process API
// backed by in-memory sqlite, miniredis and a mocked rate source.
func TestFeatures(t *testing.T) {
	opts := godog.Options{
		Format:      "pretty",
		Paths:       []string{"features"},
		Output:      colors.Colored(os.Stdout),
		Concurrency: 1, // Scenarios share the in-memory database and redis
		Strict:      true,
		TestingT:    t,
	}

	// GODOG_TAGS narrows the run, e.g. GODOG_TAGS=@rates
	if tags := os.Getenv("GODOG_TAGS"); tags != "" {
		opts.Tags = tags
	}
	if format := os.Getenv("GODOG_FORMAT"); format != "" {
		opts.Format = format
	}

	suite := godog.TestSuite{
		Name:                 "obligations-api",
		ScenarioInitializer:  steps.InitializeScenario,
		TestSuiteInitializer: steps.InitializeTestSuite,
		Options:              &opts,
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
