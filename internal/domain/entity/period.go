// Package entity defines the core business entities for the domain layer.
package entity

// Granularity represents the length of a budget accounting period.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
	GranularityYearly  Granularity = "yearly"
)

// IsValid reports whether the granularity is one of the supported values.
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityDaily, GranularityWeekly, GranularityMonthly, GranularityYearly:
		return true
	}
	return false
}
