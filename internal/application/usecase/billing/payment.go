// Package billing advances subscription billing cycles and derives their status.
package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/domain/entity"
	domainerror "github.com/finance-tracker/obligations/internal/domain/error"
)

// MarkAsPaid returns a copy of sub with a payment dated now appended and the
// due date advanced by one cycle. Payments already recorded are left as they are.
func MarkAsPaid(sub entity.Subscription, now time.Time) (entity.Subscription, error) {
	if sub.Amount.IsNegative() {
		return entity.Subscription{}, domainerror.NewBillingError(
			domainerror.ErrCodeNegativePayment,
			"subscription amount must not be negative",
			domainerror.ErrNegativeQuantity,
		)
	}

	next, err := NextDue(sub.NextDueDate, sub.Cycle)
	if err != nil {
		return entity.Subscription{}, err
	}

	paid := sub.Clone()
	paid.Payments = append(paid.Payments, entity.SubscriptionPayment{
		ID:             uuid.New(),
		SubscriptionID: sub.ID,
		Amount:         sub.Amount,
		Currency:       sub.Currency,
		PaidAt:         now,
		DueDate:        sub.NextDueDate,
	})
	paid.NextDueDate = next
	paid.UpdatedAt = now

	return paid, nil
}

// TotalPaid sums every recorded payment of sub.
func TotalPaid(sub entity.Subscription) decimal.Decimal {
	total := decimal.Zero
	for _, p := range sub.Payments {
		total = total.Add(p.Amount)
	}
	return total
}
