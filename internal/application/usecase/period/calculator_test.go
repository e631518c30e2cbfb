package period

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/finance-tracker/obligations/internal/domain/entity"
	domainerror "github.com/finance-tracker/obligations/internal/domain/error"
	"github.com/finance-tracker/obligations/internal/domain/valueobject"
)

func date(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func lastInstant(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 23, 59, 59, 999999999, time.UTC)
}

func TestCalculator_Window(t *testing.T) {
	monday := NewCalculator(valueobject.DefaultCalendar())
	sunday := NewCalculator(valueobject.NewCalendar(time.UTC, time.Sunday))

	tests := []struct {
		name        string
		calc        *Calculator
		now         time.Time
		granularity entity.Granularity
		wantStart   time.Time
		wantEnd     time.Time
	}{
		{
			name:        "daily",
			calc:        monday,
			now:         date(2025, time.March, 13, 15),
			granularity: entity.GranularityDaily,
			wantStart:   date(2025, time.March, 13, 0),
			wantEnd:     lastInstant(2025, time.March, 13),
		},
		{
			name:        "weekly starting monday",
			calc:        monday,
			now:         date(2025, time.March, 13, 15),
			granularity: entity.GranularityWeekly,
			wantStart:   date(2025, time.March, 10, 0),
			wantEnd:     lastInstant(2025, time.March, 16),
		},
		{
			name:        "weekly starting sunday",
			calc:        sunday,
			now:         date(2025, time.March, 13, 15),
			granularity: entity.GranularityWeekly,
			wantStart:   date(2025, time.March, 9, 0),
			wantEnd:     lastInstant(2025, time.March, 15),
		},
		{
			name:        "weekly on the week start day",
			calc:        monday,
			now:         date(2025, time.March, 10, 0),
			granularity: entity.GranularityWeekly,
			wantStart:   date(2025, time.March, 10, 0),
			wantEnd:     lastInstant(2025, time.March, 16),
		},
		{
			name:        "weekly spanning a year boundary",
			calc:        monday,
			now:         date(2025, time.January, 1, 8),
			granularity: entity.GranularityWeekly,
			wantStart:   date(2024, time.December, 30, 0),
			wantEnd:     lastInstant(2025, time.January, 5),
		},
		{
			name:        "monthly in leap february",
			calc:        monday,
			now:         date(2024, time.February, 15, 12),
			granularity: entity.GranularityMonthly,
			wantStart:   date(2024, time.February, 1, 0),
			wantEnd:     lastInstant(2024, time.February, 29),
		},
		{
			name:        "monthly in non-leap february",
			calc:        monday,
			now:         date(2023, time.February, 15, 12),
			granularity: entity.GranularityMonthly,
			wantStart:   date(2023, time.February, 1, 0),
			wantEnd:     lastInstant(2023, time.February, 28),
		},
		{
			name:        "monthly with 30 days",
			calc:        monday,
			now:         date(2025, time.April, 30, 23),
			granularity: entity.GranularityMonthly,
			wantStart:   date(2025, time.April, 1, 0),
			wantEnd:     lastInstant(2025, time.April, 30),
		},
		{
			name:        "yearly",
			calc:        monday,
			now:         date(2025, time.July, 4, 9),
			granularity: entity.GranularityYearly,
			wantStart:   date(2025, time.January, 1, 0),
			wantEnd:     lastInstant(2025, time.December, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := tt.calc.Window(tt.now, tt.granularity)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !w.Start.Equal(tt.wantStart) {
				t.Errorf("expected start %v, got %v", tt.wantStart, w.Start)
			}
			if !w.End.Equal(tt.wantEnd) {
				t.Errorf("expected end %v, got %v", tt.wantEnd, w.End)
			}
		})
	}
}

func TestCalculator_WindowUsesCalendarLocation(t *testing.T) {
	tbilisi := time.FixedZone("UTC+4", 4*60*60)
	calc := NewCalculator(valueobject.NewCalendar(tbilisi, time.Monday))

	// 22:00 UTC on March 31 is already April 1 in UTC+4.
	now := time.Date(2025, time.March, 31, 22, 0, 0, 0, time.UTC)

	w, err := calc.Window(now, entity.GranularityMonthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStart := time.Date(2025, time.April, 1, 0, 0, 0, 0, tbilisi)
	if !w.Start.Equal(wantStart) {
		t.Errorf("expected start %v, got %v", wantStart, w.Start)
	}
	if !w.Contains(now) {
		t.Errorf("expected window %v..%v to contain %v", w.Start, w.End, now)
	}
}

func TestCalculator_WindowRejectsUnknownGranularity(t *testing.T) {
	calc := NewCalculator(valueobject.DefaultCalendar())

	_, err := calc.Window(date(2025, time.March, 1, 0), entity.Granularity("fortnightly"))
	if !errors.Is(err, domainerror.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}

	var periodErr *domainerror.PeriodError
	if !errors.As(err, &periodErr) {
		t.Fatalf("expected *PeriodError, got %T", err)
	}
	if periodErr.Code != domainerror.ErrCodeUnknownGranularity {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeUnknownGranularity, periodErr.Code)
	}
}

func santiago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Fatalf("failed to load America/Santiago: %v", err)
	}
	return loc
}

func TestCalculator_WindowsContainNowAndAreContiguous(t *testing.T) {
	calendars := []valueobject.Calendar{
		valueobject.DefaultCalendar(),
		valueobject.NewCalendar(time.UTC, time.Sunday),
		valueobject.NewCalendar(time.FixedZone("UTC-5", -5*60*60), time.Saturday),
		valueobject.NewCalendar(santiago(t), time.Sunday),
	}
	granularities := []entity.Granularity{
		entity.GranularityDaily,
		entity.GranularityWeekly,
		entity.GranularityMonthly,
		entity.GranularityYearly,
	}

	start := time.Date(2023, time.December, 25, 7, 30, 0, 0, time.UTC)

	for _, cal := range calendars {
		calc := NewCalculator(cal)
		for _, g := range granularities {
			// Step through ~14 months in uneven increments.
			for now := start; now.Before(start.AddDate(1, 2, 0)); now = now.Add(61*time.Hour + 17*time.Minute) {
				w, err := calc.Window(now, g)
				if err != nil {
					t.Fatalf("%s: unexpected error: %v", g, err)
				}
				if now.Before(w.Start) || now.After(w.End) {
					t.Fatalf("%s: window %v..%v does not contain %v", g, w.Start, w.End, now)
				}

				next, err := calc.Next(w, g)
				if err != nil {
					t.Fatalf("%s: unexpected error: %v", g, err)
				}
				if !next.Start.Equal(w.End.Add(time.Nanosecond)) {
					t.Fatalf("%s: gap or overlap between %v and %v", g, w.End, next.Start)
				}

				prev, err := calc.Previous(w, g)
				if err != nil {
					t.Fatalf("%s: unexpected error: %v", g, err)
				}
				if !prev.End.Add(time.Nanosecond).Equal(w.Start) {
					t.Fatalf("%s: gap or overlap between %v and %v", g, prev.End, w.Start)
				}
			}
		}
	}
}

// Chile moved its clocks from 00:00 to 01:00 on 2011-08-21, so that day has
// no midnight.
func TestCalculator_WindowAcrossMidnightDSTStart(t *testing.T) {
	loc := santiago(t)
	calc := NewCalculator(valueobject.NewCalendar(loc, time.Sunday))
	transition := time.Date(2011, time.August, 21, 4, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		now         time.Time
		granularity entity.Granularity
		wantStart   time.Time
		wantEnd     time.Time
	}{
		{
			name:        "day before the gap ends at the transition",
			now:         time.Date(2011, time.August, 20, 23, 30, 0, 0, loc),
			granularity: entity.GranularityDaily,
			wantStart:   time.Date(2011, time.August, 20, 0, 0, 0, 0, loc),
			wantEnd:     transition.Add(-time.Nanosecond),
		},
		{
			name:        "day of the gap starts at the transition",
			now:         time.Date(2011, time.August, 21, 9, 0, 0, 0, loc),
			granularity: entity.GranularityDaily,
			wantStart:   transition,
			wantEnd:     time.Date(2011, time.August, 22, 0, 0, 0, 0, loc).Add(-time.Nanosecond),
		},
		{
			name:        "week starting on the gap day",
			now:         time.Date(2011, time.August, 23, 12, 0, 0, 0, loc),
			granularity: entity.GranularityWeekly,
			wantStart:   transition,
			wantEnd:     time.Date(2011, time.August, 28, 0, 0, 0, 0, loc).Add(-time.Nanosecond),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := calc.Window(tt.now, tt.granularity)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !w.Start.Equal(tt.wantStart) || !w.End.Equal(tt.wantEnd) {
				t.Errorf("Window() = %v..%v, want %v..%v", w.Start, w.End, tt.wantStart, tt.wantEnd)
			}
			if !w.Contains(tt.now) {
				t.Errorf("window %v..%v does not contain %v", w.Start, w.End, tt.now)
			}

			next, err := calc.Next(w, tt.granularity)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !next.Start.Equal(w.End.Add(time.Nanosecond)) {
				t.Errorf("gap or overlap between %v and %v", w.End, next.Start)
			}
		})
	}

	// A daily walk across the gap never repeats a window.
	w, err := calc.Window(time.Date(2011, time.August, 18, 12, 0, 0, 0, loc), entity.GranularityDaily)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 6; i++ {
		next, err := calc.Next(w, entity.GranularityDaily)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !next.Start.After(w.Start) {
			t.Fatalf("Next(%v..%v) did not advance", w.Start, w.End)
		}
		w = next
	}
}

func TestCalculator_Progress(t *testing.T) {
	calc := NewCalculator(valueobject.DefaultCalendar())
	january := valueobject.Window{
		Start: date(2025, time.January, 1, 0),
		End:   lastInstant(2025, time.January, 31),
	}
	day := valueobject.Window{
		Start: date(2025, time.January, 1, 0),
		End:   lastInstant(2025, time.January, 1),
	}

	tests := []struct {
		name   string
		window valueobject.Window
		now    time.Time
		want   float64
	}{
		{name: "at start", window: january, now: date(2025, time.January, 1, 10), want: 0},
		{name: "half way", window: january, now: date(2025, time.January, 16, 10), want: 0.5},
		{name: "at end", window: january, now: lastInstant(2025, time.January, 31), want: 1},
		{name: "before start clamps to zero", window: january, now: date(2024, time.December, 20, 0), want: 0},
		{name: "after end clamps to one", window: january, now: date(2025, time.March, 1, 0), want: 1},
		{name: "single day window", window: day, now: date(2025, time.January, 1, 12), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calc.Progress(tt.window, tt.now); got != tt.want {
				t.Errorf("expected progress %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCalculator_DaysRemainingAndElapsed(t *testing.T) {
	calc := NewCalculator(valueobject.DefaultCalendar())
	start := date(2025, time.January, 1, 0)
	end := lastInstant(2025, time.January, 31)

	if got := calc.DaysRemaining(end, date(2025, time.January, 15, 10)); got != 16 {
		t.Errorf("expected 16 days remaining, got %d", got)
	}
	if got := calc.DaysRemaining(end, date(2025, time.January, 31, 22)); got != 0 {
		t.Errorf("expected 0 days remaining on the last day, got %d", got)
	}
	if got := calc.DaysRemaining(end, date(2025, time.February, 3, 0)); got != 0 {
		t.Errorf("expected 0 days remaining after end, got %d", got)
	}
	if got := calc.DaysElapsed(start, date(2025, time.January, 15, 10)); got != 14 {
		t.Errorf("expected 14 days elapsed, got %d", got)
	}
	if got := calc.DaysElapsed(start, date(2024, time.December, 31, 10)); got != 0 {
		t.Errorf("expected 0 days elapsed before start, got %d", got)
	}
}

func TestCalculator_Label(t *testing.T) {
	calc := NewCalculator(valueobject.DefaultCalendar())
	now := date(2025, time.March, 12, 9)

	tests := []struct {
		granularity entity.Granularity
		want        string
	}{
		{entity.GranularityDaily, "2025-03-12"},
		{entity.GranularityWeekly, "W11 2025"},
		{entity.GranularityMonthly, "Mar 2025"},
		{entity.GranularityYearly, "2025"},
	}

	for _, tt := range tests {
		t.Run(string(tt.granularity), func(t *testing.T) {
			w, err := calc.Window(now, tt.granularity)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := calc.Label(w, tt.granularity); got != tt.want {
				t.Errorf("expected label %q, got %q", tt.want, got)
			}
		})
	}
}
