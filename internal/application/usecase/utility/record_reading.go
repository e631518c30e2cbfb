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

// RecordMeterReadingInput represents the input for recording a meter reading.
type RecordMeterReadingInput struct {
	AccountID uuid.UUID
	Value     decimal.Decimal
	ReadAt    *time.Time // Optional, defaults to now
}

// RecordMeterReadingOutput represents the output of recording a meter reading.
type RecordMeterReadingOutput struct {
	Account     *entity.UtilityAccount
	Reading     entity.MeterReading
	Consumption *decimal.Decimal // Nil for the earliest reading
}

// RecordMeterReadingUseCase appends a meter reading to a utility account.
type RecordMeterReadingUseCase struct {
	accountRepo adapter.UtilityAccountRepository
	clock       adapter.Clock
	locks       *lock.KeyedMutex
}

// NewRecordMeterReadingUseCase creates a new RecordMeterReadingUseCase instance.
func NewRecordMeterReadingUseCase(
	accountRepo adapter.UtilityAccountRepository,
	clock adapter.Clock,
	locks *lock.KeyedMutex,
) *RecordMeterReadingUseCase {
	return &RecordMeterReadingUseCase{
		accountRepo: accountRepo,
		clock:       clock,
		locks:       locks,
	}
}

// Execute records the reading.
func (uc *RecordMeterReadingUseCase) Execute(ctx context.Context, input RecordMeterReadingInput) (*RecordMeterReadingOutput, error) {
	unlock := uc.locks.Lock(input.AccountID)
	defer unlock()

	now := uc.clock.Now()
	readAt := now
	if input.ReadAt != nil {
		readAt = *input.ReadAt
	}

	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find utility account: %w", err)
	}

	updated, err := RecordReading(*account, input.Value, readAt)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = now

	if err := uc.accountRepo.Save(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to save utility account: %w", err)
	}

	reading := updated.Readings[len(updated.Readings)-1]
	output := &RecordMeterReadingOutput{
		Account: &updated,
		Reading: reading,
	}
	if diff, ok := Consumption(updated, reading.ID); ok {
		output.Consumption = &diff
	}

	slog.Info("Meter reading recorded",
		"account_id", updated.ID,
		"value", reading.Value.String(),
	)

	return output, nil
}
