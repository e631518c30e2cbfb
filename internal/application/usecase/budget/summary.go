// Package budget computes spending, status and projections for budgets.
package budget

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/application/usecase/rate"
	"github.com/finance-tracker/obligations/internal/domain/entity"
	"github.com/finance-tracker/obligations/internal/domain/valueobject"
)

// Summary is the full picture of a budget in its current window.
type Summary struct {
	Budget           entity.Budget
	Window           valueobject.Window
	Label            string
	Spent            entity.Money
	Effective        entity.Money
	Remaining        entity.Money // Negative once the budget is exceeded
	PercentUsed      float64
	Status           entity.BudgetStatus
	Projected        entity.Money
	DailyAllowance   entity.Money
	DaysElapsed      int
	DaysRemaining    int
	Progress         float64
	TransactionCount int
	Warnings         []valueobject.Warning
}

// Summarize computes every figure shown for a budget at now.
func (a *Aggregator) Summarize(
	budget entity.Budget,
	transactions []*entity.Transaction,
	converter rate.Converter,
	quote *rate.Quote,
	now time.Time,
) (*Summary, error) {
	spent, err := a.SpentAmount(budget, transactions, converter, quote, now)
	if err != nil {
		return nil, err
	}

	window := spent.Window
	effective := budget.EffectiveBudget()
	remaining := effective.Sub(spent.Amount.Amount)
	daysElapsed := a.calculator.DaysElapsed(window.Start, now)
	daysRemaining := a.calculator.DaysRemaining(window.End, now)

	summary := &Summary{
		Budget:           budget,
		Window:           window,
		Label:            a.calculator.Label(window, budget.Period),
		Spent:            spent.Amount,
		Effective:        entity.NewMoney(effective, budget.Currency),
		Remaining:        entity.NewMoney(remaining, budget.Currency),
		PercentUsed:      percentUsed(spent.Amount.Amount, effective),
		Status:           a.Status(budget, spent.Amount.Amount, now),
		Projected:        entity.NewMoney(ProjectedTotal(spent.Amount.Amount, daysElapsed, daysRemaining), budget.Currency),
		DailyAllowance:   entity.NewMoney(dailyAllowance(remaining, daysRemaining), budget.Currency),
		DaysElapsed:      daysElapsed,
		DaysRemaining:    daysRemaining,
		Progress:         a.calculator.Progress(window, now),
		TransactionCount: spent.Counted,
		Warnings:         spent.Warnings,
	}

	return summary, nil
}

func percentUsed(spent, effective decimal.Decimal) float64 {
	if !effective.IsPositive() {
		if spent.IsPositive() {
			return 100
		}
		return 0
	}
	pct, _ := spent.Div(effective).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return pct
}

// dailyAllowance spreads what is left over the remaining days, today included.
func dailyAllowance(remaining decimal.Decimal, daysRemaining int) decimal.Decimal {
	if !remaining.IsPositive() {
		return decimal.Zero
	}
	days := daysRemaining + 1
	return remaining.Div(decimal.NewFromInt(int64(days)))
}
