package steps

import (
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/finance-tracker/obligations/test/integration/mock"
)

func registerRateAPISteps(ctx *godog.ScenarioContext, t *TestContext) {
	ctx.Given(`^the rate API quotes "([^"]*)" as of now:$`, t.theRateAPIQuotesAsOfNow)
	ctx.Given(`^the rate API quotes "([^"]*)" as of "([^"]*)":$`, t.theRateAPIQuotesAsOf)
	ctx.Given(`^the rate API fails for "([^"]*)" with status (\d+)$`, t.theRateAPIFailsWithStatus)
	ctx.Then(`^the rate API should have received (\d+) requests? for "([^"]*)"$`, t.theRateAPIShouldHaveReceived)
	ctx.Then(`^the rate snapshot for "([^"]*)" should be stored in redis$`, t.theRateSnapshotShouldBeStored)
}

func (t *TestContext) theRateAPIQuotesAsOfNow(base string, table *godog.Table) error {
	return t.quote(base, t.timeMock.Now(), table)
}

func (t *TestContext) theRateAPIQuotesAsOf(base, at string, table *godog.Table) error {
	updatedAt, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", at, err)
	}
	return t.quote(base, updatedAt, table)
}

// quote reads a two column currency | rate table.
func (t *TestContext) quote(base string, updatedAt time.Time, table *godog.Table) error {
	rates := make(map[string]string, len(table.Rows))
	for i, row := range table.Rows {
		if len(row.Cells) != 2 {
			return fmt.Errorf("row %d: expected currency and rate", i)
		}
		if i == 0 && row.Cells[0].Value == "currency" {
			continue
		}
		rates[row.Cells[0].Value] = row.Cells[1].Value
	}
	t.rateAPI.SetRates(base, rates, updatedAt)
	return nil
}

func (t *TestContext) theRateAPIFailsWithStatus(base string, status int) error {
	t.rateAPI.SetFailure(base, status)
	return nil
}

func (t *TestContext) theRateAPIShouldHaveReceived(count int, base string) error {
	if got := t.rateAPI.RequestCount(base); got != count {
		return fmt.Errorf("expected %d rate requests for %s, got %d", count, base, got)
	}
	return nil
}

func (t *TestContext) theRateSnapshotShouldBeStored(base string) error {
	key := "rates:snapshot:" + base
	if !mock.RedisKeyExists(key) {
		return fmt.Errorf("redis key %s not found", key)
	}
	return nil
}
