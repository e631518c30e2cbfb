// Package billing advances subscription billing cycles and derives their status.
package billing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/obligations/internal/application/adapter"
	"github.com/finance-tracker/obligations/internal/application/usecase/lock"
	"github.com/finance-tracker/obligations/internal/domain/entity"
	"github.com/finance-tracker/obligations/internal/domain/valueobject"
)

// MarkSubscriptionPaidInput represents the input for paying a subscription.
type MarkSubscriptionPaidInput struct {
	SubscriptionID uuid.UUID
}

// MarkSubscriptionPaidOutput represents the output of paying a subscription.
type MarkSubscriptionPaidOutput struct {
	Subscription *entity.Subscription
	Payment      entity.SubscriptionPayment
	Status       entity.SubscriptionStatus
}

// MarkSubscriptionPaidUseCase records the payment of the current cycle.
type MarkSubscriptionPaidUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
	clock            adapter.Clock
	calendar         valueobject.Calendar
	locks            *lock.KeyedMutex
}

// NewMarkSubscriptionPaidUseCase creates a new MarkSubscriptionPaidUseCase instance.
func NewMarkSubscriptionPaidUseCase(
	subscriptionRepo adapter.SubscriptionRepository,
	clock adapter.Clock,
	calendar valueobject.Calendar,
	locks *lock.KeyedMutex,
) *MarkSubscriptionPaidUseCase {
	return &MarkSubscriptionPaidUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
		calendar:         calendar,
		locks:            locks,
	}
}

// Execute marks the subscription as paid.
func (uc *MarkSubscriptionPaidUseCase) Execute(ctx context.Context, input MarkSubscriptionPaidInput) (*MarkSubscriptionPaidOutput, error) {
	unlock := uc.locks.Lock(input.SubscriptionID)
	defer unlock()

	sub, err := uc.subscriptionRepo.FindByID(ctx, input.SubscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}

	now := uc.calendar.In(uc.clock.Now())
	paid, err := MarkAsPaid(*sub, now)
	if err != nil {
		return nil, err
	}

	if err := uc.subscriptionRepo.Save(ctx, &paid); err != nil {
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	payment := paid.Payments[len(paid.Payments)-1]
	slog.Info("Subscription marked as paid",
		"subscription_id", paid.ID,
		"due_date", payment.DueDate,
		"next_due_date", paid.NextDueDate,
	)

	return &MarkSubscriptionPaidOutput{
		Subscription: &paid,
		Payment:      payment,
		Status:       DeriveStatus(paid, now),
	}, nil
}
