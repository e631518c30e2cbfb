// Package utility keeps utility-account payment and meter-reading histories.
package utility

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/domain/entity"
	domainerror "github.com/finance-tracker/obligations/internal/domain/error"
	"github.com/finance-tracker/obligations/internal/domain/valueobject"
)

// AverageWindow is the number of most recent payments the monthly average covers.
const AverageWindow = 6

// RecordPayment returns a copy of account with a payment of amount made at
// appended. The monthly average and last-payment fields are recomputed and an
// existing due date moves forward one calendar month.
func RecordPayment(account entity.UtilityAccount, amount decimal.Decimal, at time.Time) (entity.UtilityAccount, error) {
	if amount.IsNegative() {
		return entity.UtilityAccount{}, domainerror.NewLedgerError(
			domainerror.ErrCodeNegativeAmount,
			"payment amount must not be negative",
			domainerror.ErrNegativeQuantity,
		)
	}
	if at.IsZero() {
		return entity.UtilityAccount{}, domainerror.NewLedgerError(
			domainerror.ErrCodeMissingFields,
			"payment time is required",
			nil,
		)
	}

	updated := account.Clone()
	updated.Payments = append(updated.Payments, entity.UtilityPayment{
		ID:        uuid.New(),
		AccountID: account.ID,
		Amount:    amount,
		PaidAt:    at,
	})
	refreshPaymentSummary(&updated)

	if updated.NextDueDate != nil {
		next := valueobject.AddMonthsClamped(*updated.NextDueDate, 1)
		updated.NextDueDate = &next
	}

	return updated, nil
}

// RemovePayment returns a copy of account without the payment paymentID and
// with the average and last-payment fields recomputed from what remains.
// The due date is left unchanged.
func RemovePayment(account entity.UtilityAccount, paymentID uuid.UUID) (entity.UtilityAccount, error) {
	idx := -1
	for i, p := range account.Payments {
		if p.ID == paymentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entity.UtilityAccount{}, domainerror.NewLedgerError(
			domainerror.ErrCodePaymentNotFound,
			"payment not found",
			domainerror.ErrPaymentNotFound,
		)
	}

	updated := account.Clone()
	updated.Payments = append(updated.Payments[:idx], updated.Payments[idx+1:]...)
	refreshPaymentSummary(&updated)

	return updated, nil
}

// RecordReading returns a copy of account with a meter reading appended.
// Nothing else on the account changes.
func RecordReading(account entity.UtilityAccount, value decimal.Decimal, at time.Time) (entity.UtilityAccount, error) {
	if value.IsNegative() {
		return entity.UtilityAccount{}, domainerror.NewLedgerError(
			domainerror.ErrCodeNegativeReading,
			"meter value must not be negative",
			domainerror.ErrNegativeQuantity,
		)
	}
	if at.IsZero() {
		return entity.UtilityAccount{}, domainerror.NewLedgerError(
			domainerror.ErrCodeMissingFields,
			"reading time is required",
			nil,
		)
	}

	updated := account.Clone()
	updated.Readings = append(updated.Readings, entity.MeterReading{
		ID:        uuid.New(),
		AccountID: account.ID,
		Value:     value,
		ReadAt:    at,
	})

	return updated, nil
}

// MonthlyAverage is the mean of at most the AverageWindow most recent payments.
// It is zero for an empty history.
func MonthlyAverage(payments []entity.UtilityPayment) decimal.Decimal {
	recent := newestFirst(payments)
	if len(recent) > AverageWindow {
		recent = recent[:AverageWindow]
	}
	if len(recent) == 0 {
		return decimal.Zero
	}

	sum := decimal.Zero
	for _, p := range recent {
		sum = sum.Add(p.Amount)
	}
	return sum.Div(decimal.NewFromInt(int64(len(recent))))
}

func refreshPaymentSummary(account *entity.UtilityAccount) {
	account.MonthlyAverage = MonthlyAverage(account.Payments)

	recent := newestFirst(account.Payments)
	if len(recent) == 0 {
		account.LastPaymentAmount = nil
		account.LastPaymentDate = nil
		return
	}
	amount := recent[0].Amount
	paidAt := recent[0].PaidAt
	account.LastPaymentAmount = &amount
	account.LastPaymentDate = &paidAt
}

// newestFirst returns a copy of payments ordered by time descending. Payments
// made at the same instant keep their recording order, latest recorded first.
func newestFirst(payments []entity.UtilityPayment) []entity.UtilityPayment {
	sorted := make([]entity.UtilityPayment, len(payments))
	for i, p := range payments {
		sorted[len(payments)-1-i] = p
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PaidAt.After(sorted[j].PaidAt)
	})
	return sorted
}
