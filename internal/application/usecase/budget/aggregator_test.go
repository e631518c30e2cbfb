package budget

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/application/usecase/period"
	"github.com/finance-tracker/obligations/internal/application/usecase/rate"
	"github.com/finance-tracker/obligations/internal/domain/entity"
	"github.com/finance-tracker/obligations/internal/domain/valueobject"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestAggregator() *Aggregator {
	return NewAggregator(period.NewCalculator(valueobject.DefaultCalendar()))
}

func groceries(amount string) entity.Budget {
	return entity.Budget{
		ID:             uuid.New(),
		Name:           "Groceries",
		Amount:         dec(amount),
		Currency:       entity.CurrencyGEL,
		Category:       entity.CategoryFood,
		Period:         entity.GranularityMonthly,
		AlertThreshold: 0.8,
		StartDate:      time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		IsActive:       true,
	}
}

func expense(amount string, currency entity.CurrencyCode, category entity.Category, date time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID:       uuid.New(),
		Date:     date,
		Amount:   dec(amount),
		Currency: currency,
		Type:     entity.TransactionTypeExpense,
		Category: category,
	}
}

func gelQuote(stale bool) *rate.Quote {
	snapshot := entity.NewRateSnapshot(entity.CurrencyUSD, map[entity.CurrencyCode]decimal.Decimal{
		entity.CurrencyGEL: dec("2.70"),
		entity.CurrencyEUR: dec("0.90"),
	}, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))

	quote := &rate.Quote{Snapshot: snapshot, Stale: stale}
	if stale {
		quote.Warnings = []valueobject.Warning{valueobject.NewStaleFallbackWarning(entity.CurrencyUSD)}
	}
	return quote
}

func TestStatus(t *testing.T) {
	agg := newTestAggregator()
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		budget func() entity.Budget
		spent  string
		want   entity.BudgetStatus
	}{
		{name: "ratio 0.84 over 0.8 threshold", budget: func() entity.Budget { return groceries("500") }, spent: "420", want: entity.BudgetStatusWarning},
		{name: "below threshold", budget: func() entity.Budget { return groceries("500") }, spent: "399.99", want: entity.BudgetStatusOnTrack},
		{name: "exactly at threshold", budget: func() entity.Budget { return groceries("500") }, spent: "400", want: entity.BudgetStatusWarning},
		{name: "exactly at budget", budget: func() entity.Budget { return groceries("500") }, spent: "500", want: entity.BudgetStatusExceeded},
		{name: "over budget", budget: func() entity.Budget { return groceries("500") }, spent: "612", want: entity.BudgetStatusExceeded},
		{
			name: "rollover raises the limit",
			budget: func() entity.Budget {
				b := groceries("500")
				b.RolloverEnabled = true
				b.RolloverAmount = dec("100")
				return b
			},
			spent: "420",
			want:  entity.BudgetStatusOnTrack,
		},
		{
			name: "rollover ignored when disabled",
			budget: func() entity.Budget {
				b := groceries("500")
				b.RolloverAmount = dec("100")
				return b
			},
			spent: "420",
			want:  entity.BudgetStatusWarning,
		},
		{
			name: "inactive budget whose period ended is completed",
			budget: func() entity.Budget {
				b := groceries("500")
				b.IsActive = false
				return b
			},
			spent: "612",
			want:  entity.BudgetStatusCompleted,
		},
		{
			name: "inactive budget still inside its period",
			budget: func() entity.Budget {
				b := groceries("500")
				b.IsActive = false
				b.StartDate = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
				return b
			},
			spent: "100",
			want:  entity.BudgetStatusOnTrack,
		},
		{
			name: "zero budget with spending",
			budget: func() entity.Budget {
				return groceries("0")
			},
			spent: "1",
			want:  entity.BudgetStatusExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := agg.Status(tt.budget(), dec(tt.spent), now)
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestSpentAmount_FiltersTransactions(t *testing.T) {
	agg := newTestAggregator()
	budget := groceries("500")
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	income := expense("1000", entity.CurrencyGEL, entity.CategoryFood, now)
	income.Type = entity.TransactionTypeIncome

	transactions := []*entity.Transaction{
		expense("120", entity.CurrencyGEL, entity.CategoryFood, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)),
		expense("300", entity.CurrencyGEL, entity.CategoryFood, time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC)),
		expense("50", entity.CurrencyGEL, entity.CategoryTransport, now),
		expense("70", entity.CurrencyGEL, entity.CategoryFood, time.Date(2025, time.February, 28, 23, 59, 59, 0, time.UTC)),
		expense("80", entity.CurrencyGEL, entity.CategoryFood, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)),
		income,
		nil,
	}

	result, err := agg.SpentAmount(budget, transactions, rate.SnapshotConverter{}, nil, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Amount.Amount.Equal(dec("420")) {
		t.Errorf("expected 420 spent, got %s", result.Amount.Amount)
	}
	if result.Amount.Currency != entity.CurrencyGEL {
		t.Errorf("expected GEL, got %s", result.Amount.Currency)
	}
	if result.Counted != 2 {
		t.Errorf("expected 2 counted transactions, got %d", result.Counted)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %+v", result.Warnings)
	}
	if got := agg.Status(budget, result.Amount.Amount, now); got != entity.BudgetStatusWarning {
		t.Errorf("expected warning status, got %s", got)
	}
}

func TestSpentAmount_ConvertsForeignCurrency(t *testing.T) {
	agg := newTestAggregator()
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	transactions := []*entity.Transaction{
		expense("100", entity.CurrencyGEL, entity.CategoryFood, now),
		expense("10", entity.CurrencyUSD, entity.CategoryFood, now),
		expense("9", entity.CurrencyEUR, entity.CategoryFood, now),
	}

	result, err := agg.SpentAmount(groceries("500"), transactions, rate.SnapshotConverter{}, gelQuote(false), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 100 + 10 USD (27 GEL) + 9 EUR (10 USD, 27 GEL).
	if !result.Amount.Amount.Equal(dec("154")) {
		t.Errorf("expected 154, got %s", result.Amount.Amount)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %+v", result.Warnings)
	}
}

func TestSpentAmount_FallsBackToRawAmounts(t *testing.T) {
	agg := newTestAggregator()
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	t.Run("missing rate keeps the transaction", func(t *testing.T) {
		transactions := []*entity.Transaction{
			expense("100", entity.CurrencyGEL, entity.CategoryFood, now),
			expense("15", entity.CurrencyJPY, entity.CategoryFood, now),
			expense("5", entity.CurrencyJPY, entity.CategoryFood, now),
		}

		result, err := agg.SpentAmount(groceries("500"), transactions, rate.SnapshotConverter{}, gelQuote(false), now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Amount.Amount.Equal(dec("120")) {
			t.Errorf("expected raw amounts to be counted, got %s", result.Amount.Amount)
		}
		if len(result.Warnings) != 1 || result.Warnings[0].Code != valueobject.WarningMissingRate || result.Warnings[0].Currency != entity.CurrencyJPY {
			t.Errorf("expected a single JPY missing_rate warning, got %+v", result.Warnings)
		}
	})

	t.Run("no rates at all", func(t *testing.T) {
		transactions := []*entity.Transaction{expense("10", entity.CurrencyUSD, entity.CategoryFood, now)}

		result, err := agg.SpentAmount(groceries("500"), transactions, rate.SnapshotConverter{}, nil, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Amount.Amount.Equal(dec("10")) {
			t.Errorf("expected 10, got %s", result.Amount.Amount)
		}
		if len(result.Warnings) != 1 || result.Warnings[0].Code != valueobject.WarningMissingRate {
			t.Errorf("expected missing_rate warning, got %+v", result.Warnings)
		}
	})

	t.Run("stale snapshot still converts", func(t *testing.T) {
		transactions := []*entity.Transaction{expense("10", entity.CurrencyUSD, entity.CategoryFood, now)}

		result, err := agg.SpentAmount(groceries("500"), transactions, rate.SnapshotConverter{}, gelQuote(true), now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Amount.Amount.Equal(dec("27")) {
			t.Errorf("expected 27, got %s", result.Amount.Amount)
		}
		if len(result.Warnings) != 1 || result.Warnings[0].Code != valueobject.WarningStaleFallback {
			t.Errorf("expected stale_fallback warning, got %+v", result.Warnings)
		}
	})
}

func TestSpentAmount_InvalidPeriod(t *testing.T) {
	budget := groceries("500")
	budget.Period = entity.Granularity("fortnightly")

	if _, err := newTestAggregator().SpentAmount(budget, nil, rate.SnapshotConverter{}, nil, time.Now()); err == nil {
		t.Error("expected an error for an unknown period")
	}
}

func TestProjectedTotal(t *testing.T) {
	tests := []struct {
		name          string
		spent         string
		daysElapsed   int
		daysRemaining int
		want          string
	}{
		{name: "steady pace", spent: "140", daysElapsed: 14, daysRemaining: 16, want: "300"},
		{name: "first day", spent: "25", daysElapsed: 0, daysRemaining: 30, want: "775"},
		{name: "period over", spent: "480", daysElapsed: 30, daysRemaining: 0, want: "480"},
		{name: "nothing spent", spent: "0", daysElapsed: 10, daysRemaining: 20, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectedTotal(dec(tt.spent), tt.daysElapsed, tt.daysRemaining)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestRolloverForNextPeriod(t *testing.T) {
	tests := []struct {
		name     string
		enabled  bool
		carried  string
		spent    string
		wantNext string
	}{
		{name: "leftover carried", enabled: true, carried: "0", spent: "420", wantNext: "80"},
		{name: "includes prior rollover", enabled: true, carried: "50", spent: "420", wantNext: "130"},
		{name: "overspend carries nothing", enabled: true, carried: "0", spent: "650", wantNext: "0"},
		{name: "disabled", enabled: false, carried: "50", spent: "100", wantNext: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget := groceries("500")
			budget.RolloverEnabled = tt.enabled
			budget.RolloverAmount = dec(tt.carried)

			next := RolloverForNextPeriod(budget, dec(tt.spent))
			if !next.RolloverAmount.Equal(dec(tt.wantNext)) {
				t.Errorf("expected rollover %s, got %s", tt.wantNext, next.RolloverAmount)
			}
			if !budget.RolloverAmount.Equal(dec(tt.carried)) {
				t.Error("expected the input budget to be left unchanged")
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	agg := newTestAggregator()
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	transactions := []*entity.Transaction{
		expense("140", entity.CurrencyGEL, entity.CategoryFood, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)),
	}

	summary, err := agg.Summarize(groceries("500"), transactions, rate.SnapshotConverter{}, nil, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Label != "Mar 2025" {
		t.Errorf("expected label Mar 2025, got %q", summary.Label)
	}
	if !summary.Remaining.Amount.Equal(dec("360")) {
		t.Errorf("expected 360 remaining, got %s", summary.Remaining.Amount)
	}
	if summary.PercentUsed != 28 {
		t.Errorf("expected 28%% used, got %v", summary.PercentUsed)
	}
	if summary.Status != entity.BudgetStatusOnTrack {
		t.Errorf("expected on_track, got %s", summary.Status)
	}
	if summary.DaysElapsed != 14 || summary.DaysRemaining != 16 {
		t.Errorf("expected 14 elapsed and 16 remaining, got %d and %d", summary.DaysElapsed, summary.DaysRemaining)
	}
	if !summary.Projected.Amount.Equal(dec("300")) {
		t.Errorf("expected projection 300, got %s", summary.Projected.Amount)
	}
	// 360 over the 17 days left including today.
	if got := summary.DailyAllowance.Round().Amount; !got.Equal(dec("21.18")) {
		t.Errorf("expected daily allowance 21.18, got %s", got)
	}
	if summary.TransactionCount != 1 {
		t.Errorf("expected 1 transaction, got %d", summary.TransactionCount)
	}
}
