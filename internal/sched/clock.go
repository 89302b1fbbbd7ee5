// internal/sched/clock.go
package sched

import "time"

// Clock abstracts time so timers can run against a test-controlled clock.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// WallClock is the real time source used in production.
var WallClock = ClockFunc(time.Now)

// ManualClock is a Clock advanced explicitly by the caller. Tests drive the
// scheduler by moving it forward and calling Tick.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a manual clock starting at the given instant.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	return c.now
}

// Add moves the clock forward by d.
func (c *ManualClock) Add(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set jumps the clock to now.
func (c *ManualClock) Set(now time.Time) {
	c.now = now
}
