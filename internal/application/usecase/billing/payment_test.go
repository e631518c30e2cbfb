package billing

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/domain/entity"
	domainerror "github.com/finance-tracker/obligations/internal/domain/error"
)

func TestMarkAsPaid(t *testing.T) {
	subID := uuid.New()
	earlier := entity.SubscriptionPayment{
		ID:             uuid.New(),
		SubscriptionID: subID,
		Amount:         decimal.RequireFromString("9.99"),
		Currency:       entity.CurrencyUSD,
		PaidAt:         time.Date(2024, time.December, 31, 10, 0, 0, 0, time.UTC),
		DueDate:        time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
	sub := entity.Subscription{
		ID:          subID,
		Amount:      decimal.RequireFromString("9.99"),
		Currency:    entity.CurrencyUSD,
		Cycle:       entity.Monthly,
		NextDueDate: time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
		IsActive:    true,
		Payments:    []entity.SubscriptionPayment{earlier},
	}
	now := time.Date(2025, time.January, 30, 18, 0, 0, 0, time.UTC)

	paid, err := MarkAsPaid(sub, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantNext := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)
	if !paid.NextDueDate.Equal(wantNext) {
		t.Errorf("expected next due %v, got %v", wantNext, paid.NextDueDate)
	}
	if len(paid.Payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(paid.Payments))
	}
	if paid.Payments[0] != earlier {
		t.Errorf("expected earlier payment to be preserved, got %+v", paid.Payments[0])
	}

	latest := paid.Payments[1]
	if !latest.PaidAt.Equal(now) {
		t.Errorf("expected payment dated %v, got %v", now, latest.PaidAt)
	}
	if !latest.DueDate.Equal(sub.NextDueDate) {
		t.Errorf("expected payment to settle %v, got %v", sub.NextDueDate, latest.DueDate)
	}
	if latest.SubscriptionID != subID {
		t.Errorf("expected payment owned by %s, got %s", subID, latest.SubscriptionID)
	}

	// The input value is untouched.
	if len(sub.Payments) != 1 {
		t.Errorf("expected input history to keep 1 payment, got %d", len(sub.Payments))
	}
	if !sub.NextDueDate.Equal(time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected input due date to be unchanged, got %v", sub.NextDueDate)
	}

	if !TotalPaid(paid).Equal(decimal.RequireFromString("19.98")) {
		t.Errorf("expected total paid 19.98, got %s", TotalPaid(paid))
	}
}

func TestMarkAsPaid_RejectsNegativeAmount(t *testing.T) {
	sub := entity.Subscription{
		Amount:      decimal.NewFromInt(-5),
		Cycle:       entity.Monthly,
		NextDueDate: time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
	}

	_, err := MarkAsPaid(sub, time.Now())
	if !errors.Is(err, domainerror.ErrNegativeQuantity) {
		t.Errorf("expected ErrNegativeQuantity, got %v", err)
	}
}

func TestMarkAsPaid_RejectsInvalidCycle(t *testing.T) {
	sub := entity.Subscription{
		Amount:      decimal.NewFromInt(5),
		Cycle:       entity.CustomCycle(0),
		NextDueDate: time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
	}

	_, err := MarkAsPaid(sub, time.Now())
	if !errors.Is(err, domainerror.ErrInvalidBillingCycle) {
		t.Errorf("expected ErrInvalidBillingCycle, got %v", err)
	}
}
