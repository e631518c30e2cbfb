package mock

import (
	"sync"
	"time"
)

// Time is a controllable clock. It stays frozen at the configured instant
// until moved with SetCurrentTime or Advance.
type Time struct {
	mu      sync.RWMutex
	current time.Time
}

func NewTime() *Time {
	return &Time{current: time.Now().UTC()}
}

func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = currentTime
}

func (t *Time) Advance(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = t.current.Add(d)
}

func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}
