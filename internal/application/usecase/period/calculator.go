// Package period computes budget accounting windows.
package period

import (
	"fmt"
	"time"

	"github.com/finance-tracker/obligations/internal/domain/entity"
	domainerror "github.com/finance-tracker/obligations/internal/domain/error"
	"github.com/finance-tracker/obligations/internal/domain/valueobject"
)

// Calculator derives period windows in an explicit calendar.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	calendar valueobject.Calendar
}

// NewCalculator creates a new Calculator for the given calendar.
func NewCalculator(calendar valueobject.Calendar) *Calculator {
	return &Calculator{calendar: calendar}
}

// Calendar returns the calendar the calculator works in.
func (c *Calculator) Calendar() valueobject.Calendar {
	return c.calendar
}

// Window returns the window of the given granularity that contains now.
//   - Daily: midnight to the last instant of the day
//   - Weekly: the configured week start to the last instant of the sixth day after it
//   - Monthly: the 1st to the last instant before the 1st of the next month
//   - Yearly: Jan 1 to the last instant of Dec 31
func (c *Calculator) Window(now time.Time, granularity entity.Granularity) (valueobject.Window, error) {
	t := c.calendar.In(now)
	loc := t.Location()
	year, month, day := t.Date()

	var start, next time.Time
	switch granularity {
	case entity.GranularityDaily:
		start = valueobject.DayStart(year, month, day, loc)
		next = valueobject.DayStart(year, month, day+1, loc)
	case entity.GranularityWeekly:
		offset := (int(t.Weekday()) - int(c.calendar.WeekStart) + 7) % 7
		start = valueobject.DayStart(year, month, day-offset, loc)
		next = valueobject.DayStart(year, month, day-offset+7, loc)
	case entity.GranularityMonthly:
		start = valueobject.DayStart(year, month, 1, loc)
		next = valueobject.DayStart(year, month+1, 1, loc)
	case entity.GranularityYearly:
		start = valueobject.DayStart(year, time.January, 1, loc)
		next = valueobject.DayStart(year+1, time.January, 1, loc)
	default:
		return valueobject.Window{}, domainerror.NewPeriodError(
			domainerror.ErrCodeUnknownGranularity,
			fmt.Sprintf("unknown granularity %q", granularity),
			domainerror.ErrInvalidPeriod,
		)
	}

	window := valueobject.Window{Start: start, End: next.Add(-time.Nanosecond)}
	if window.IsEmpty() {
		return valueobject.Window{}, domainerror.NewPeriodError(
			domainerror.ErrCodeDegenerateWindow,
			"period window has no length",
			domainerror.ErrInvalidPeriod,
		)
	}
	return window, nil
}

// Next returns the window immediately following w.
func (c *Calculator) Next(w valueobject.Window, granularity entity.Granularity) (valueobject.Window, error) {
	return c.Window(w.End.Add(time.Nanosecond), granularity)
}

// Previous returns the window immediately preceding w.
func (c *Calculator) Previous(w valueobject.Window, granularity entity.Granularity) (valueobject.Window, error) {
	return c.Window(w.Start.Add(-time.Nanosecond), granularity)
}

// Progress returns the elapsed share of the window in whole days, clamped to [0,1].
func (c *Calculator) Progress(w valueobject.Window, now time.Time) float64 {
	totalDays := c.calendar.DaysBetween(w.Start, w.End)
	if totalDays < 1 {
		totalDays = 1
	}
	elapsed := float64(c.calendar.DaysBetween(w.Start, now)) / float64(totalDays)

	switch {
	case elapsed < 0:
		return 0
	case elapsed > 1:
		return 1
	default:
		return elapsed
	}
}

// DaysRemaining returns the whole days left until end, or 0 once now is past end.
func (c *Calculator) DaysRemaining(end, now time.Time) int {
	if now.After(end) {
		return 0
	}
	return c.calendar.DaysBetween(now, end)
}

// DaysElapsed returns the whole days since start, or 0 before start.
func (c *Calculator) DaysElapsed(start, now time.Time) int {
	if now.Before(start) {
		return 0
	}
	return c.calendar.DaysBetween(start, now)
}

// Label returns a human-readable label for the window.
// Formats:
// - Daily: "2025-03-14"
// - Weekly: "W{week} {year}" (e.g., "W11 2025")
// - Monthly: "{month_abbr} {year}" (e.g., "Mar 2025")
// - Yearly: "{year}"
func (c *Calculator) Label(w valueobject.Window, granularity entity.Granularity) string {
	start := c.calendar.In(w.Start)
	switch granularity {
	case entity.GranularityWeekly:
		year, week := start.ISOWeek()
		return fmt.Sprintf("W%d %d", week, year)
	case entity.GranularityMonthly:
		return start.Format("Jan 2006")
	case entity.GranularityYearly:
		return start.Format("2006")
	default:
		return start.Format("2006-01-02")
	}
}
