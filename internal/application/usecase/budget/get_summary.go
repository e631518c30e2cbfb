// Package budget computes spending, status and projections for budgets.
package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/obligations/internal/application/adapter"
	"github.com/finance-tracker/obligations/internal/application/usecase/rate"
	"github.com/finance-tracker/obligations/internal/domain/entity"
	"github.com/finance-tracker/obligations/internal/domain/valueobject"
)

// GetBudgetSummaryInput represents the input for a budget summary.
type GetBudgetSummaryInput struct {
	BudgetID uuid.UUID
}

// GetBudgetSummaryOutput represents the output of a budget summary.
type GetBudgetSummaryOutput struct {
	Summary *Summary
}

// GetBudgetSummaryUseCase loads a budget with its transactions and summarizes it.
type GetBudgetSummaryUseCase struct {
	budgetRepo      adapter.BudgetRepository
	transactionRepo adapter.TransactionRepository
	rates           *rate.Cache
	aggregator      *Aggregator
	clock           adapter.Clock
	rateBase        entity.CurrencyCode
}

// NewGetBudgetSummaryUseCase creates a new GetBudgetSummaryUseCase instance.
func NewGetBudgetSummaryUseCase(
	budgetRepo adapter.BudgetRepository,
	transactionRepo adapter.TransactionRepository,
	rates *rate.Cache,
	aggregator *Aggregator,
	clock adapter.Clock,
	rateBase entity.CurrencyCode,
) *GetBudgetSummaryUseCase {
	return &GetBudgetSummaryUseCase{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		rates:           rates,
		aggregator:      aggregator,
		clock:           clock,
		rateBase:        rateBase,
	}
}

// Execute performs the summary.
func (uc *GetBudgetSummaryUseCase) Execute(ctx context.Context, input GetBudgetSummaryInput) (*GetBudgetSummaryOutput, error) {
	budget, err := uc.budgetRepo.FindByID(ctx, input.BudgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	summary, err := summarize(ctx, uc.transactionRepo, uc.rates, uc.aggregator, uc.rateBase, *budget, uc.now())
	if err != nil {
		return nil, err
	}

	return &GetBudgetSummaryOutput{Summary: summary}, nil
}

func (uc *GetBudgetSummaryUseCase) now() time.Time {
	return uc.aggregator.Calculator().Calendar().In(uc.clock.Now())
}

func summarize(
	ctx context.Context,
	transactionRepo adapter.TransactionRepository,
	rates *rate.Cache,
	aggregator *Aggregator,
	rateBase entity.CurrencyCode,
	budget entity.Budget,
	now time.Time,
) (*Summary, error) {
	window, err := aggregator.Calculator().Window(now, budget.Period)
	if err != nil {
		return nil, err
	}

	transactions, err := expensesIn(ctx, transactionRepo, budget, window)
	if err != nil {
		return nil, err
	}

	quote := quoteFor(ctx, rates, rateBase, budget, transactions, now)
	return aggregator.Summarize(budget, transactions, rate.SnapshotConverter{}, quote, now)
}

func expensesIn(
	ctx context.Context,
	transactionRepo adapter.TransactionRepository,
	budget entity.Budget,
	window valueobject.Window,
) ([]*entity.Transaction, error) {
	expense := entity.TransactionTypeExpense
	category := budget.Category

	transactions, err := transactionRepo.FindByFilters(ctx, adapter.TransactionFilters{
		StartDate: &window.Start,
		EndDate:   &window.End,
		Category:  &category,
		Type:      &expense,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}
	return transactions, nil
}

// quoteFor fetches rates only when some transaction needs converting. A
// failed fetch is not fatal: the aggregator then counts raw amounts.
func quoteFor(
	ctx context.Context,
	rates *rate.Cache,
	rateBase entity.CurrencyCode,
	budget entity.Budget,
	transactions []*entity.Transaction,
	now time.Time,
) *rate.Quote {
	needsRates := false
	for _, tx := range transactions {
		if tx.Currency != budget.Currency {
			needsRates = true
			break
		}
	}
	if !needsRates || rates == nil {
		return nil
	}

	quote, err := rates.Get(ctx, rateBase, now)
	if err != nil {
		slog.Warn("Counting unconverted amounts, exchange rates unavailable",
			"budget_id", budget.ID,
			"base", rateBase,
			"error", err,
		)
		return nil
	}
	return quote
}
