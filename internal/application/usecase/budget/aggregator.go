// Package budget computes spending, status and projections for budgets.
package budget

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/application/usecase/period"
	"github.com/finance-tracker/obligations/internal/application/usecase/rate"
	"github.com/finance-tracker/obligations/internal/domain/entity"
	"github.com/finance-tracker/obligations/internal/domain/valueobject"
)

// SpentResult is the spending counted against a budget in one window.
type SpentResult struct {
	Amount entity.Money
	Window valueobject.Window
	// Counted is the number of transactions included.
	Counted  int
	Warnings []valueobject.Warning
}

// Aggregator combines period windows and currency conversion into budget figures.
type Aggregator struct {
	calculator *period.Calculator
}

// NewAggregator creates a new Aggregator.
func NewAggregator(calculator *period.Calculator) *Aggregator {
	return &Aggregator{calculator: calculator}
}

// Calculator returns the period calculator used for budget windows.
func (a *Aggregator) Calculator() *period.Calculator {
	return a.calculator
}

// SpentAmount sums the expenses in the budget's category that fall in the
// budget's window containing now, converted to the budget currency.
// quote may be nil when no rates could be obtained.
func (a *Aggregator) SpentAmount(
	budget entity.Budget,
	transactions []*entity.Transaction,
	converter rate.Converter,
	quote *rate.Quote,
	now time.Time,
) (*SpentResult, error) {
	window, err := a.calculator.Window(now, budget.Period)
	if err != nil {
		return nil, err
	}
	return SpentInWindow(budget, transactions, converter, quote, window), nil
}

// SpentInWindow sums the budget's expenses inside window. A transaction that
// cannot be converted is counted at its raw amount with a missing_rate
// warning. Conversions made with a stale snapshot carry its warnings.
func SpentInWindow(
	budget entity.Budget,
	transactions []*entity.Transaction,
	converter rate.Converter,
	quote *rate.Quote,
	window valueobject.Window,
) *SpentResult {
	result := &SpentResult{
		Amount: entity.Zero(budget.Currency),
		Window: window,
	}

	for _, tx := range transactions {
		if tx == nil || !tx.IsExpense() || tx.Category != budget.Category || !window.Contains(tx.Date) {
			continue
		}

		amount := tx.Amount
		if tx.Currency != budget.Currency {
			amount = convertOrRaw(result, tx, budget.Currency, converter, quote)
		}

		result.Amount.Amount = result.Amount.Amount.Add(amount)
		result.Counted++
	}

	return result
}

func convertOrRaw(
	result *SpentResult,
	tx *entity.Transaction,
	to entity.CurrencyCode,
	converter rate.Converter,
	quote *rate.Quote,
) decimal.Decimal {
	if quote == nil || quote.Snapshot == nil || converter == nil {
		result.Warnings = valueobject.AppendUnique(result.Warnings, valueobject.NewMissingRateWarning(tx.Currency))
		return tx.Amount
	}

	converted, err := converter.Convert(tx.Amount, tx.Currency, to, quote.Snapshot)
	if err != nil {
		result.Warnings = valueobject.AppendUnique(result.Warnings, valueobject.NewMissingRateWarning(tx.Currency))
		return tx.Amount
	}

	for _, w := range quote.Warnings {
		result.Warnings = valueobject.AppendUnique(result.Warnings, w)
	}
	return converted
}

// Status derives the budget status from what has been spent. An inactive
// budget whose period, anchored at its start date, has ended is completed
// regardless of spending.
func (a *Aggregator) Status(budget entity.Budget, spent decimal.Decimal, now time.Time) entity.BudgetStatus {
	if !budget.IsActive {
		if w, err := a.calculator.Window(budget.StartDate, budget.Period); err == nil && w.HasEnded(now) {
			return entity.BudgetStatusCompleted
		}
	}

	effective := budget.EffectiveBudget()
	if !effective.IsPositive() {
		if spent.IsPositive() {
			return entity.BudgetStatusExceeded
		}
		return entity.BudgetStatusOnTrack
	}

	ratio := spent.Div(effective)
	switch {
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(1)):
		return entity.BudgetStatusExceeded
	case ratio.GreaterThanOrEqual(decimal.NewFromFloat(budget.AlertThreshold)):
		return entity.BudgetStatusWarning
	default:
		return entity.BudgetStatusOnTrack
	}
}

// ProjectedTotal extrapolates the daily spending rate over the days remaining.
func ProjectedTotal(spent decimal.Decimal, daysElapsed, daysRemaining int) decimal.Decimal {
	if daysElapsed < 1 {
		daysElapsed = 1
	}
	daily := spent.Div(decimal.NewFromInt(int64(daysElapsed)))
	return daily.Mul(decimal.NewFromInt(int64(daysRemaining))).Add(spent)
}

// RolloverForNextPeriod returns a copy of budget carrying what was left
// unspent into the next period. Overspending carries nothing, and budgets
// without rollover always carry zero.
func RolloverForNextPeriod(budget entity.Budget, spent decimal.Decimal) entity.Budget {
	next := budget
	if !budget.RolloverEnabled {
		next.RolloverAmount = decimal.Zero
		return next
	}

	leftover := budget.EffectiveBudget().Sub(spent)
	if leftover.IsNegative() {
		leftover = decimal.Zero
	}
	next.RolloverAmount = leftover
	return next
}
