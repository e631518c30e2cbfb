// Package utility keeps utility-account payment and meter-reading histories.
package utility

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/application/adapter"
	"github.com/finance-tracker/obligations/internal/application/usecase/lock"
	"github.com/finance-tracker/obligations/internal/domain/entity"
)

// RecordUtilityPaymentInput represents the input for recording a utility payment.
type RecordUtilityPaymentInput struct {
	AccountID uuid.UUID
	Amount    decimal.Decimal
	PaidAt    *time.Time // Optional, defaults to now
}

// RecordUtilityPaymentOutput represents the output of recording a utility payment.
type RecordUtilityPaymentOutput struct {
	Account *entity.UtilityAccount
	Payment entity.UtilityPayment
}

// RecordUtilityPaymentUseCase appends a payment to a utility account.
type RecordUtilityPaymentUseCase struct {
	accountRepo adapter.UtilityAccountRepository
	clock       adapter.Clock
	locks       *lock.KeyedMutex
}

// NewRecordUtilityPaymentUseCase creates a new RecordUtilityPaymentUseCase instance.
// locks should be shared with every other use case that writes utility accounts.
func NewRecordUtilityPaymentUseCase(
	accountRepo adapter.UtilityAccountRepository,
	clock adapter.Clock,
	locks *lock.KeyedMutex,
) *RecordUtilityPaymentUseCase {
	return &RecordUtilityPaymentUseCase{
		accountRepo: accountRepo,
		clock:       clock,
		locks:       locks,
	}
}

// Execute records the payment.
func (uc *RecordUtilityPaymentUseCase) Execute(ctx context.Context, input RecordUtilityPaymentInput) (*RecordUtilityPaymentOutput, error) {
	unlock := uc.locks.Lock(input.AccountID)
	defer unlock()

	now := uc.clock.Now()
	paidAt := now
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}

	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find utility account: %w", err)
	}

	updated, err := RecordPayment(*account, input.Amount, paidAt)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = now

	if err := uc.accountRepo.Save(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to save utility account: %w", err)
	}

	payment := updated.Payments[len(updated.Payments)-1]
	slog.Info("Utility payment recorded",
		"account_id", updated.ID,
		"amount", payment.Amount.String(),
		"monthly_average", updated.MonthlyAverage.StringFixed(2),
	)

	return &RecordUtilityPaymentOutput{
		Account: &updated,
		Payment: payment,
	}, nil
}
