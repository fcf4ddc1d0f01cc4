package sim

import (
	"sync"
	"time"
)

// Epoch is where every battle clock starts so seeded runs replay exactly
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Clock is a manually advanced simulation clock. It implements stats.Clock.
type Clock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewClock creates a clock set to start
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current simulation time
func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new time
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}
