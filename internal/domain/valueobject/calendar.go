// Package valueobject contains domain value objects for the obligations engine.
package valueobject

import "time"

// Calendar carries the time zone and first weekday used for every day,
// week and month boundary. It replaces any reliance on the process locale.
type Calendar struct {
	Location  *time.Location
	WeekStart time.Weekday
}

// DefaultCalendar returns a UTC calendar whose weeks start on Monday.
func DefaultCalendar() Calendar {
	return Calendar{Location: time.UTC, WeekStart: time.Monday}
}

// NewCalendar creates a calendar; a nil location means UTC.
func NewCalendar(loc *time.Location, weekStart time.Weekday) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{Location: loc, WeekStart: weekStart}
}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// In converts t to the calendar's time zone.
func (c Calendar) In(t time.Time) time.Time {
	return t.In(c.location())
}

// StartOfDay returns the first instant of the day containing t.
func (c Calendar) StartOfDay(t time.Time) time.Time {
	t = c.In(t)
	return DayStart(t.Year(), t.Month(), t.Day(), c.location())
}

// DayStart returns the first instant of the calendar date year-month-day in
// loc. Out-of-range values are normalized the way time.Date does. In zones
// where DST begins at midnight the day starts at the transition instead.
func DayStart(year int, month time.Month, day int, loc *time.Location) time.Time {
	year, month, day = time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	return forwardToDate(t, year, month, day)
}

// forwardToDate moves t onto the given date when time.Date normalized a
// nonexistent local time back into the previous day.
func forwardToDate(t time.Time, year int, month time.Month, day int) time.Time {
	if y, m, d := t.Date(); y == year && m == month && d == day {
		return t
	}
	if _, end := t.ZoneBounds(); !end.IsZero() && end.After(t) {
		if y, m, d := end.Date(); y == year && m == month && d == day {
			return end
		}
	}
	for i := 0; i < 24; i++ {
		t = t.Add(time.Hour)
		if y, m, d := t.Date(); y == year && m == month && d == day {
			return t
		}
	}
	return t
}

// SameDay reports whether a and b fall on the same calendar day.
func (c Calendar) SameDay(a, b time.Time) bool {
	ay, am, ad := c.In(a).Date()
	by, bm, bd := c.In(b).Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween counts calendar days from the day of from to the day of to.
// The result is negative when to falls on an earlier day. Days that are
// 23 or 25 hours long because of DST still count as one.
func (c Calendar) DaysBetween(from, to time.Time) int {
	fy, fm, fd := c.In(from).Date()
	ty, tm, td := c.In(to).Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// AddMonthsClamped adds months to t keeping the time of day. When the day of
// month does not exist in the target month it is clamped to that month's last
// day, so Jan 31 + 1 month is Feb 28 (or Feb 29 in a leap year).
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	// Day 0 of the following month is the last day of the target month.
	lastDay := time.Date(year, month+time.Month(months)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}

	ty, tm, _ := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC).Date()
	next := time.Date(ty, tm, day, hour, minute, sec, t.Nanosecond(), t.Location())
	return forwardToDate(next, ty, tm, day)
}
