// Package billing advances subscription billing cycles and derives their status.
package billing

import (
	"time"

	"github.com/finance-tracker/obligations/internal/domain/entity"
	"github.com/finance-tracker/obligations/internal/domain/valueobject"
)

// DeriveStatus projects the status of sub at now. Day boundaries are taken
// in now's location, so callers pass now already converted to the user's
// calendar. Rules are checked in order and the first match wins:
// paused, cancelled, trial, overdue, due today, due soon, active.
func DeriveStatus(sub entity.Subscription, now time.Time) entity.SubscriptionStatus {
	if sub.IsPaused {
		return entity.SubscriptionStatusPaused
	}
	if !sub.IsActive {
		return entity.SubscriptionStatusCancelled
	}
	if sub.TrialEndDate != nil && now.Before(*sub.TrialEndDate) {
		return entity.SubscriptionStatusTrial
	}

	cal := calendarAt(now)
	if sub.NextDueDate.Before(cal.StartOfDay(now)) {
		return entity.SubscriptionStatusOverdue
	}
	if cal.SameDay(sub.NextDueDate, now) {
		return entity.SubscriptionStatusDueToday
	}

	days := cal.DaysBetween(now, sub.NextDueDate)
	if days >= 0 && days <= sub.ReminderDaysBefore {
		return entity.SubscriptionStatusDueSoon
	}
	return entity.SubscriptionStatusActive
}

// DaysUntilDue counts calendar days from now to the next due date.
// It is negative when the subscription is overdue.
func DaysUntilDue(sub entity.Subscription, now time.Time) int {
	return calendarAt(now).DaysBetween(now, sub.NextDueDate)
}

func calendarAt(now time.Time) valueobject.Calendar {
	return valueobject.NewCalendar(now.Location(), time.Monday)
}
