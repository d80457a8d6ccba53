package testutil

import (
	"sync"
	"time"
)

// Clock is a deterministic, thread-safe time source for tests. Each call to
// Now advances it by Step, so rows stamped through it get strictly
// increasing creation times.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	Step time.Duration
}

// NewClock starts at 2024-01-01T12:00:00Z and advances one second per call.
func NewClock() *Clock {
	return &Clock{
		now:  time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC),
		Step: time.Second,
	}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.Step)
	return c.now
}

// Freeze stops the clock from advancing so several rows share one instant.
func (c *Clock) Freeze() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Step = 0
}
