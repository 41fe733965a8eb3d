package clock

import (
	"sync/atomic"
	"time"
)

// FakeClock is a manually advanced clock for deterministic tests.
//
// Safe for concurrent use.
type FakeClock struct {
	now atomic.Int64
}

// NewFake creates a FakeClock starting at start nanoseconds.
func NewFake(start int64) *FakeClock {
	c := &FakeClock{}
	c.now.Store(start)
	return c
}

// Nanotime returns the current fake reading.
func (c *FakeClock) Nanotime() int64 {
	return c.now.Load()
}

// Advance moves the clock forward by d. Negative d moves it backwards,
// which lets tests provoke clock faults.
func (c *FakeClock) Advance(d time.Duration) {
	c.now.Add(int64(d))
}

// Set places the clock at an absolute reading.
func (c *FakeClock) Set(ns int64) {
	c.now.Store(ns)
}
