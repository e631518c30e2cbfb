// Package error defines domain-specific errors for the obligations engine.
package error

import "errors"

// Record lookup errors returned by the persistence collaborators.
var (
	// ErrBudgetNotFound is returned when a budget is not found.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrSubscriptionNotFound is returned when a subscription is not found.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrUtilityAccountNotFound is returned when a utility account is not found.
	ErrUtilityAccountNotFound = errors.New("utility account not found")

	// ErrRateSnapshotNotFound is returned when no snapshot is stored for a base currency.
	ErrRateSnapshotNotFound = errors.New("rate snapshot not found")
)
