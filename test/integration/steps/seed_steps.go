package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/domain/entity"
	"github.com/finance-tracker/obligations/internal/integration/persistence"
)

const dateLayout = "2006-01-02"

func registerClockSteps(ctx *godog.ScenarioContext, t *TestContext) {
	ctx.Given(`^the current time is "([^"]*)"$`, t.theCurrentTimeIs)
	ctx.Given(`^(\d+) seconds? pass(?:es)?$`, t.secondsPass)
	ctx.Given(`^(\d+) days? pass(?:es)?$`, t.daysPass)
}

func registerSeedSteps(ctx *godog.ScenarioContext, t *TestContext) {
	// Budgets and their transactions
	ctx.Given(`^an? "([^"]*)" budget "([^"]*)" of "([^"]*)" "([^"]*)" for category "([^"]*)"$`, t.aBudgetExists)
	ctx.Given(`^the budget "([^"]*)" alerts at "([^"]*)"$`, t.theBudgetAlertsAt)
	ctx.Given(`^the budget "([^"]*)" carries a rollover of "([^"]*)"$`, t.theBudgetCarriesARollover)
	ctx.Given(`^the budget "([^"]*)" is inactive$`, t.theBudgetIsInactive)
	ctx.Given(`^an? (expense|income) of "([^"]*)" "([^"]*)" in category "([^"]*)" on "([^"]*)"$`, t.aTransactionExists)

	// Subscriptions
	ctx.Given(`^a "([^"]*)" subscription "([^"]*)" of "([^"]*)" "([^"]*)" due on "([^"]*)"$`, t.aSubscriptionExists)
	ctx.Given(`^the subscription "([^"]*)" is paused$`, t.theSubscriptionIsPaused)
	ctx.Given(`^the subscription "([^"]*)" is in trial until "([^"]*)"$`, t.theSubscriptionIsInTrialUntil)

	// Utility accounts
	ctx.Given(`^an? "([^"]*)" utility account "([^"]*)" in "([^"]*)"$`, t.aUtilityAccountExists)
}

func (t *TestContext) theCurrentTimeIs(value string) error {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	t.timeMock.SetCurrentTime(now)
	return nil
}

func (t *TestContext) secondsPass(seconds int) error {
	t.timeMock.Advance(time.Duration(seconds) * time.Second)
	return nil
}

func (t *TestContext) daysPass(days int) error {
	t.timeMock.Advance(time.Duration(days) * 24 * time.Hour)
	return nil
}

func (t *TestContext) aBudgetExists(granularity, name, amount, currency, category string) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	code, err := entity.ParseCurrencyCode(currency)
	if err != nil {
		return err
	}
	cat := entity.Category(category)
	if !cat.IsValid() {
		return fmt.Errorf("unknown category %q", category)
	}

	b := entity.NewBudget(name, value, code, cat, entity.Granularity(granularity), t.timeMock.Now().AddDate(-1, 0, 0))
	if err := persistence.NewBudgetRepository(t.db.DbConn).Create(context.Background(), b); err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}
	t.ids[name] = b.ID
	return nil
}

func (t *TestContext) updateBudget(name string, mutate func(*entity.Budget) error) error {
	id, ok := t.ids[name]
	if !ok {
		return fmt.Errorf("budget %q was not created", name)
	}
	repo := persistence.NewBudgetRepository(t.db.DbConn)
	b, err := repo.FindByID(context.Background(), id)
	if err != nil {
		return err
	}
	if err := mutate(b); err != nil {
		return err
	}
	return repo.Update(context.Background(), b)
}

func (t *TestContext) theBudgetAlertsAt(name, threshold string) error {
	return t.updateBudget(name, func(b *entity.Budget) error {
		value, err := decimal.NewFromString(threshold)
		if err != nil {
			return fmt.Errorf("invalid threshold %q: %w", threshold, err)
		}
		b.AlertThreshold = value.InexactFloat64()
		return nil
	})
}

func (t *TestContext) theBudgetCarriesARollover(name, amount string) error {
	return t.updateBudget(name, func(b *entity.Budget) error {
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return fmt.Errorf("invalid rollover %q: %w", amount, err)
		}
		b.RolloverEnabled = true
		b.RolloverAmount = value
		return nil
	})
}

func (t *TestContext) theBudgetIsInactive(name string) error {
	return t.updateBudget(name, func(b *entity.Budget) error {
		b.IsActive = false
		return nil
	})
}

func (t *TestContext) aTransactionExists(kind, amount, currency, category, date string) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	code, err := entity.ParseCurrencyCode(currency)
	if err != nil {
		return err
	}
	day, err := parseDay(date)
	if err != nil {
		return err
	}

	tx := entity.NewTransaction(day, category+" "+kind, value, code, entity.TransactionType(kind), entity.Category(category))
	return persistence.NewTransactionRepository(t.db.DbConn).Create(context.Background(), tx)
}

func (t *TestContext) aSubscriptionExists(cycle, name, amount, currency, dueDate string) error {
	billingCycle, err := parseCycle(cycle)
	if err != nil {
		return err
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	code, err := entity.ParseCurrencyCode(currency)
	if err != nil {
		return err
	}
	due, err := parseDay(dueDate)
	if err != nil {
		return err
	}

	now := t.timeMock.Now()
	sub := &entity.Subscription{
		ID:                 uuid.New(),
		Name:               name,
		Amount:             value,
		Currency:           code,
		Category:           entity.CategorySubscriptions,
		Cycle:              billingCycle,
		StartDate:          due.AddDate(0, -1, 0),
		NextDueDate:        due,
		ReminderDaysBefore: 3,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := persistence.NewSubscriptionRepository(t.db.DbConn).Create(context.Background(), sub); err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	t.ids[name] = sub.ID
	return nil
}

func (t *TestContext) updateSubscription(name string, mutate func(*entity.Subscription) error) error {
	id, ok := t.ids[name]
	if !ok {
		return fmt.Errorf("subscription %q was not created", name)
	}
	repo := persistence.NewSubscriptionRepository(t.db.DbConn)
	sub, err := repo.FindByID(context.Background(), id)
	if err != nil {
		return err
	}
	if err := mutate(sub); err != nil {
		return err
	}
	return repo.Save(context.Background(), sub)
}

func (t *TestContext) theSubscriptionIsPaused(name string) error {
	return t.updateSubscription(name, func(sub *entity.Subscription) error {
		sub.IsPaused = true
		return nil
	})
}

func (t *TestContext) theSubscriptionIsInTrialUntil(name, date string) error {
	return t.updateSubscription(name, func(sub *entity.Subscription) error {
		day, err := parseDay(date)
		if err != nil {
			return err
		}
		sub.TrialEndDate = &day
		return nil
	})
}

func (t *TestContext) aUtilityAccountExists(kind, name, currency string) error {
	code, err := entity.ParseCurrencyCode(currency)
	if err != nil {
		return err
	}

	now := t.timeMock.Now()
	account := &entity.UtilityAccount{
		ID:             uuid.New(),
		Name:           name,
		Kind:           entity.UtilityKind(kind),
		Currency:       code,
		MonthlyAverage: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := persistence.NewUtilityAccountRepository(t.db.DbConn).Create(context.Background(), account); err != nil {
		return fmt.Errorf("failed to create utility account: %w", err)
	}
	t.ids[name] = account.ID
	return nil
}

func parseDay(value string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return day, nil
}

// parseCycle accepts a cycle kind or "custom(N)".
func parseCycle(value string) (entity.BillingCycle, error) {
	var days int
	if _, err := fmt.Sscanf(value, "custom(%d)", &days); err == nil {
		return entity.CustomCycle(days), nil
	}

	cycle := entity.BillingCycle{Kind: entity.BillingCycleKind(strings.ToLower(value))}
	if !cycle.IsValid() {
		return entity.BillingCycle{}, fmt.Errorf("unknown billing cycle %q", value)
	}
	return cycle, nil
}
