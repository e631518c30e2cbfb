// Package utility keeps utility-account payment and meter-reading histories.
package utility

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/obligations/internal/application/adapter"
	"github.com/finance-tracker/obligations/internal/application/usecase/lock"
	"github.com/finance-tracker/obligations/internal/domain/entity"
)

// RemoveUtilityPaymentInput represents the input for removing a utility payment.
type RemoveUtilityPaymentInput struct {
	AccountID uuid.UUID
	PaymentID uuid.UUID
}

// RemoveUtilityPaymentOutput represents the output of removing a utility payment.
type RemoveUtilityPaymentOutput struct {
	Account *entity.UtilityAccount
}

// RemoveUtilityPaymentUseCase deletes a payment recorded by mistake.
type RemoveUtilityPaymentUseCase struct {
	accountRepo adapter.UtilityAccountRepository
	clock       adapter.Clock
	locks       *lock.KeyedMutex
}

// NewRemoveUtilityPaymentUseCase creates a new RemoveUtilityPaymentUseCase instance.
func NewRemoveUtilityPaymentUseCase(
	accountRepo adapter.UtilityAccountRepository,
	clock adapter.Clock,
	locks *lock.KeyedMutex,
) *RemoveUtilityPaymentUseCase {
	return &RemoveUtilityPaymentUseCase{
		accountRepo: accountRepo,
		clock:       clock,
		locks:       locks,
	}
}

// Execute removes the payment.
func (uc *RemoveUtilityPaymentUseCase) Execute(ctx context.Context, input RemoveUtilityPaymentInput) (*RemoveUtilityPaymentOutput, error) {
	unlock := uc.locks.Lock(input.AccountID)
	defer unlock()

	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find utility account: %w", err)
	}

	updated, err := RemovePayment(*account, input.PaymentID)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = uc.clock.Now()

	if err := uc.accountRepo.Save(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to save utility account: %w", err)
	}

	slog.Info("Utility payment removed",
		"account_id", updated.ID,
		"payment_id", input.PaymentID,
	)

	return &RemoveUtilityPaymentOutput{Account: &updated}, nil
}
