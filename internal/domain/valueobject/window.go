// Package valueobject contains domain value objects for the obligations engine.
package valueobject

import "time"

// Window is a contiguous accounting span. End is the last instant before
// the next window of the same granularity begins.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies inside the window, both ends included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// IsEmpty reports whether the window has no positive length.
func (w Window) IsEmpty() bool {
	return !w.End.After(w.Start)
}

// HasEnded reports whether now is past the end of the window.
func (w Window) HasEnded(now time.Time) bool {
	return now.After(w.End)
}
