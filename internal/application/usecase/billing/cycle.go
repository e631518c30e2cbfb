// Package billing advances subscription billing cycles and derives their status.
package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/domain/entity"
	domainerror "github.com/finance-tracker/obligations/internal/domain/error"
	"github.com/finance-tracker/obligations/internal/domain/valueobject"
)

// Monthly factors for the fixed cycles, normalized to a 30-day month.
var (
	weeksPerMonth     = decimal.RequireFromString("4.33")
	fortnightPerMonth = decimal.RequireFromString("2.17")
	daysPerMonth      = decimal.NewFromInt(30)
	monthsPerYear     = decimal.NewFromInt(12)
)

// NextDue returns the due date one cycle after current.
// Weekly and biweekly add 7 and 14 days, custom(n) adds n days, and the
// month-based cycles add calendar months with the day clamped to the end of
// the target month. The result is always strictly after current.
func NextDue(current time.Time, cycle entity.BillingCycle) (time.Time, error) {
	if !cycle.IsValid() {
		return time.Time{}, invalidCycleError(cycle)
	}

	var next time.Time
	switch cycle.Kind {
	case entity.BillingCycleWeekly:
		next = current.AddDate(0, 0, 7)
	case entity.BillingCycleBiweekly:
		next = current.AddDate(0, 0, 14)
	case entity.BillingCycleMonthly:
		next = valueobject.AddMonthsClamped(current, 1)
	case entity.BillingCycleQuarterly:
		next = valueobject.AddMonthsClamped(current, 3)
	case entity.BillingCycleBiannual:
		next = valueobject.AddMonthsClamped(current, 6)
	case entity.BillingCycleYearly:
		next = valueobject.AddMonthsClamped(current, 12)
	case entity.BillingCycleCustom:
		next = current.AddDate(0, 0, cycle.Days)
	}

	if !next.After(current) {
		return time.Time{}, invalidCycleError(cycle)
	}
	return next, nil
}

// UpcomingDueDates returns the next count due dates after the subscription's
// current due date, starting with NextDueDate itself.
func UpcomingDueDates(sub entity.Subscription, count int) ([]time.Time, error) {
	dates := make([]time.Time, 0, count)
	current := sub.NextDueDate
	for i := 0; i < count; i++ {
		dates = append(dates, current)
		next, err := NextDue(current, sub.Cycle)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return dates, nil
}

// MonthlyEquivalent normalizes amount billed every cycle to one month.
func MonthlyEquivalent(amount decimal.Decimal, cycle entity.BillingCycle) (decimal.Decimal, error) {
	if !cycle.IsValid() {
		return decimal.Zero, invalidCycleError(cycle)
	}

	switch cycle.Kind {
	case entity.BillingCycleWeekly:
		return amount.Mul(weeksPerMonth), nil
	case entity.BillingCycleBiweekly:
		return amount.Mul(fortnightPerMonth), nil
	case entity.BillingCycleQuarterly:
		return amount.Div(decimal.NewFromInt(3)), nil
	case entity.BillingCycleBiannual:
		return amount.Div(decimal.NewFromInt(6)), nil
	case entity.BillingCycleYearly:
		return amount.Div(monthsPerYear), nil
	case entity.BillingCycleCustom:
		return amount.Mul(daysPerMonth).Div(decimal.NewFromInt(int64(cycle.Days))), nil
	default:
		return amount, nil
	}
}

// YearlyEquivalent is MonthlyEquivalent times twelve.
func YearlyEquivalent(amount decimal.Decimal, cycle entity.BillingCycle) (decimal.Decimal, error) {
	monthly, err := MonthlyEquivalent(amount, cycle)
	if err != nil {
		return decimal.Zero, err
	}
	return monthly.Mul(monthsPerYear), nil
}

func invalidCycleError(cycle entity.BillingCycle) error {
	return domainerror.NewBillingError(
		domainerror.ErrCodeInvalidBillingCycle,
		"billing cycle "+cycle.String()+" cannot advance a due date",
		domainerror.ErrInvalidBillingCycle,
	)
}
