// Package budget computes spending, status and projections for budgets.
package budget

import (
	"context"
	"fmt"

	"github.com/finance-tracker/obligations/internal/application/adapter"
	"github.com/finance-tracker/obligations/internal/application/usecase/rate"
	"github.com/finance-tracker/obligations/internal/domain/entity"
)

// ListBudgetSummariesOutput represents the output of listing budget summaries.
type ListBudgetSummariesOutput struct {
	Summaries []*Summary
}

// ListBudgetSummariesUseCase summarizes every active budget.
type ListBudgetSummariesUseCase struct {
	budgetRepo      adapter.BudgetRepository
	transactionRepo adapter.TransactionRepository
	rates           *rate.Cache
	aggregator      *Aggregator
	clock           adapter.Clock
	rateBase        entity.CurrencyCode
}

// NewListBudgetSummariesUseCase creates a new ListBudgetSummariesUseCase instance.
func NewListBudgetSummariesUseCase(
	budgetRepo adapter.BudgetRepository,
	transactionRepo adapter.TransactionRepository,
	rates *rate.Cache,
	aggregator *Aggregator,
	clock adapter.Clock,
	rateBase entity.CurrencyCode,
) *ListBudgetSummariesUseCase {
	return &ListBudgetSummariesUseCase{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		rates:           rates,
		aggregator:      aggregator,
		clock:           clock,
		rateBase:        rateBase,
	}
}

// Execute performs the listing.
func (uc *ListBudgetSummariesUseCase) Execute(ctx context.Context) (*ListBudgetSummariesOutput, error) {
	budgets, err := uc.budgetRepo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find budgets: %w", err)
	}

	now := uc.aggregator.Calculator().Calendar().In(uc.clock.Now())
	output := &ListBudgetSummariesOutput{
		Summaries: make([]*Summary, 0, len(budgets)),
	}

	for _, b := range budgets {
		summary, err := summarize(ctx, uc.transactionRepo, uc.rates, uc.aggregator, uc.rateBase, *b, now)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize budget %s: %w", b.ID, err)
		}
		output.Summaries = append(output.Summaries, summary)
	}

	return output, nil
}
