// Package budget computes spending, status and projections for budgets.
package budget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/obligations/internal/application/adapter"
	"github.com/finance-tracker/obligations/internal/application/usecase/rate"
	"github.com/finance-tracker/obligations/internal/domain/entity"
	"github.com/finance-tracker/obligations/internal/domain/valueobject"
)

// ApplyRolloverInput represents the input for carrying over a budget's leftover.
type ApplyRolloverInput struct {
	BudgetID uuid.UUID
}

// ApplyRolloverOutput represents the output of carrying over a budget's leftover.
type ApplyRolloverOutput struct {
	Budget         *entity.Budget
	PreviousWindow valueobject.Window
	PreviousSpent  entity.Money
	Warnings       []valueobject.Warning
}

// ApplyRolloverUseCase sets a budget's rollover from what was left unspent in
// the window before the current one.
type ApplyRolloverUseCase struct {
	budgetRepo      adapter.BudgetRepository
	transactionRepo adapter.TransactionRepository
	rates           *rate.Cache
	aggregator      *Aggregator
	clock           adapter.Clock
	rateBase        entity.CurrencyCode
}

// NewApplyRolloverUseCase creates a new ApplyRolloverUseCase instance.
func NewApplyRolloverUseCase(
	budgetRepo adapter.BudgetRepository,
	transactionRepo adapter.TransactionRepository,
	rates *rate.Cache,
	aggregator *Aggregator,
	clock adapter.Clock,
	rateBase entity.CurrencyCode,
) *ApplyRolloverUseCase {
	return &ApplyRolloverUseCase{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		rates:           rates,
		aggregator:      aggregator,
		clock:           clock,
		rateBase:        rateBase,
	}
}

// Execute applies the rollover.
func (uc *ApplyRolloverUseCase) Execute(ctx context.Context, input ApplyRolloverInput) (*ApplyRolloverOutput, error) {
	budget, err := uc.budgetRepo.FindByID(ctx, input.BudgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	calculator := uc.aggregator.Calculator()
	now := calculator.Calendar().In(uc.clock.Now())

	current, err := calculator.Window(now, budget.Period)
	if err != nil {
		return nil, err
	}
	previous, err := calculator.Previous(current, budget.Period)
	if err != nil {
		return nil, err
	}

	transactions, err := expensesIn(ctx, uc.transactionRepo, *budget, previous)
	if err != nil {
		return nil, err
	}
	quote := quoteFor(ctx, uc.rates, uc.rateBase, *budget, transactions, now)
	spent := SpentInWindow(*budget, transactions, rate.SnapshotConverter{}, quote, previous)

	updated := RolloverForNextPeriod(*budget, spent.Amount.Amount)
	updated.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.budgetRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	slog.Info("Budget rollover applied",
		"budget_id", updated.ID,
		"period", calculator.Label(previous, budget.Period),
		"rollover", updated.RolloverAmount.StringFixed(2),
	)

	return &ApplyRolloverOutput{
		Budget:         &updated,
		PreviousWindow: previous,
		PreviousSpent:  spent.Amount,
		Warnings:       spent.Warnings,
	}, nil
}
