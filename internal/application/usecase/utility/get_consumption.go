// Package utility keeps utility-account payment and meter-reading histories.
package utility

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/application/adapter"
	"github.com/finance-tracker/obligations/internal/domain/entity"
	domainerror "github.com/finance-tracker/obligations/internal/domain/error"
)

// GetConsumptionInput represents the input for a consumption lookup.
type GetConsumptionInput struct {
	AccountID uuid.UUID
	ReadingID uuid.UUID
}

// GetConsumptionOutput represents the output of a consumption lookup.
type GetConsumptionOutput struct {
	Reading     entity.MeterReading
	Unit        string
	Consumption *decimal.Decimal // Nil when the reading is the account's earliest
	History     []ConsumptionPoint
}

// GetConsumptionUseCase reports the usage measured by a meter reading.
type GetConsumptionUseCase struct {
	accountRepo adapter.UtilityAccountRepository
}

// NewGetConsumptionUseCase creates a new GetConsumptionUseCase instance.
func NewGetConsumptionUseCase(accountRepo adapter.UtilityAccountRepository) *GetConsumptionUseCase {
	return &GetConsumptionUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the lookup.
func (uc *GetConsumptionUseCase) Execute(ctx context.Context, input GetConsumptionInput) (*GetConsumptionOutput, error) {
	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find utility account: %w", err)
	}

	reading, ok := FindReading(*account, input.ReadingID)
	if !ok {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeReadingNotFound,
			"meter reading not found",
			domainerror.ErrReadingNotFound,
		)
	}

	output := &GetConsumptionOutput{
		Reading: reading,
		Unit:    account.Kind.Info().Unit,
		History: ConsumptionHistory(*account),
	}
	if diff, ok := Consumption(*account, reading.ID); ok {
		output.Consumption = &diff
	}

	return output, nil
}
