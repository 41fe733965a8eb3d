package clock

import "time"

// StdClock reads time.Now and subtracts a fixed origin.
//
// time.Time carries a monotonic reading, so the difference is immune to
// wall-clock steps.
type StdClock struct {
	origin time.Time
}

// Std creates a StdClock whose origin is the current instant.
func Std() *StdClock {
	return &StdClock{origin: time.Now()}
}

// Nanotime returns nanoseconds since the clock was created.
func (c *StdClock) Nanotime() int64 {
	return int64(time.Since(c.origin))
}
