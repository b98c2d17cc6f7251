package mock

import (
	"sync"
	"time"
)

// Time is a controllable clock for scenarios that depend on "now", such
// as overdue derivation. Until SetCurrentTime is called it tracks the
// real clock.
type Time struct {
	mu      sync.RWMutex
	fixed   bool
	current time.Time
}

func NewTime() *Time {
	return &Time{}
}

// SetCurrentTime freezes the clock at the given instant.
func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fixed = true
	t.current = currentTime
}

// Reset returns the clock to real time.
func (t *Time) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fixed = false
}

func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.fixed {
		return t.current
	}
	return time.Now().UTC()
}
