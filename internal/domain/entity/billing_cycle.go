// Package entity defines the core business entities for the domain layer.
package entity

import "fmt"

// BillingCycleKind is the recurrence rule of a subscription.
type BillingCycleKind string

const (
	BillingCycleWeekly    BillingCycleKind = "weekly"
	BillingCycleBiweekly  BillingCycleKind = "biweekly"
	BillingCycleMonthly   BillingCycleKind = "monthly"
	BillingCycleQuarterly BillingCycleKind = "quarterly"
	BillingCycleBiannual  BillingCycleKind = "biannual"
	BillingCycleYearly    BillingCycleKind = "yearly"
	BillingCycleCustom    BillingCycleKind = "custom"
)

// BillingCycle describes how often a subscription renews.
// Days is only meaningful for BillingCycleCustom and must be positive there.
type BillingCycle struct {
	Kind BillingCycleKind
	Days int
}

// Weekly, Monthly, etc. are shorthands for the fixed cycles.
var (
	Weekly    = BillingCycle{Kind: BillingCycleWeekly}
	Biweekly  = BillingCycle{Kind: BillingCycleBiweekly}
	Monthly   = BillingCycle{Kind: BillingCycleMonthly}
	Quarterly = BillingCycle{Kind: BillingCycleQuarterly}
	Biannual  = BillingCycle{Kind: BillingCycleBiannual}
	Yearly    = BillingCycle{Kind: BillingCycleYearly}
)

// CustomCycle returns a cycle that renews every n days.
func CustomCycle(days int) BillingCycle {
	return BillingCycle{Kind: BillingCycleCustom, Days: days}
}

// IsValid reports whether the cycle can be used to advance a due date.
func (c BillingCycle) IsValid() bool {
	switch c.Kind {
	case BillingCycleWeekly, BillingCycleBiweekly, BillingCycleMonthly,
		BillingCycleQuarterly, BillingCycleBiannual, BillingCycleYearly:
		return true
	case BillingCycleCustom:
		return c.Days > 0
	}
	return false
}

// String renders the cycle, e.g. "monthly" or "custom(10)".
func (c BillingCycle) String() string {
	if c.Kind == BillingCycleCustom {
		return fmt.Sprintf("custom(%d)", c.Days)
	}
	return string(c.Kind)
}
