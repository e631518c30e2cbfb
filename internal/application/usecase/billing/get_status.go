// Package billing advances subscription billing cycles and derives their status.
package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/obligations/internal/application/adapter"
	"github.com/finance-tracker/obligations/internal/domain/entity"
	"github.com/finance-tracker/obligations/internal/domain/valueobject"
)

// upcomingDueCount is how many future due dates the status view lists.
const upcomingDueCount = 3

// GetSubscriptionStatusInput represents the input for a subscription status lookup.
type GetSubscriptionStatusInput struct {
	SubscriptionID uuid.UUID
}

// GetSubscriptionStatusOutput represents the output of a subscription status lookup.
type GetSubscriptionStatusOutput struct {
	Subscription      *entity.Subscription
	Status            entity.SubscriptionStatus
	DaysUntilDue      int
	MonthlyEquivalent entity.Money
	YearlyEquivalent  entity.Money
	UpcomingDueDates  []time.Time
	TotalPaid         entity.Money
}

// GetSubscriptionStatusUseCase derives the current status of one subscription.
type GetSubscriptionStatusUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
	clock            adapter.Clock
	calendar         valueobject.Calendar
}

// NewGetSubscriptionStatusUseCase creates a new GetSubscriptionStatusUseCase instance.
func NewGetSubscriptionStatusUseCase(
	subscriptionRepo adapter.SubscriptionRepository,
	clock adapter.Clock,
	calendar valueobject.Calendar,
) *GetSubscriptionStatusUseCase {
	return &GetSubscriptionStatusUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
		calendar:         calendar,
	}
}

// Execute performs the lookup.
func (uc *GetSubscriptionStatusUseCase) Execute(ctx context.Context, input GetSubscriptionStatusInput) (*GetSubscriptionStatusOutput, error) {
	sub, err := uc.subscriptionRepo.FindByID(ctx, input.SubscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}

	monthly, err := MonthlyEquivalent(sub.Amount, sub.Cycle)
	if err != nil {
		return nil, err
	}
	upcoming, err := UpcomingDueDates(*sub, upcomingDueCount)
	if err != nil {
		return nil, err
	}

	now := uc.calendar.In(uc.clock.Now())

	return &GetSubscriptionStatusOutput{
		Subscription:      sub,
		Status:            DeriveStatus(*sub, now),
		DaysUntilDue:      DaysUntilDue(*sub, now),
		MonthlyEquivalent: entity.NewMoney(monthly, sub.Currency),
		YearlyEquivalent:  entity.NewMoney(monthly.Mul(monthsPerYear), sub.Currency),
		UpcomingDueDates:  upcoming,
		TotalPaid:         entity.NewMoney(TotalPaid(*sub), sub.Currency),
	}, nil
}
