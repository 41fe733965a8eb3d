// Package clock provides monotonic time sources for cycle measurement.
//
// This package offers several implementations of the Clock interface:
//   - Std: time.Since against a fixed origin (carries the monotonic reading)
//   - Monotonic: runtime.nanotime, no time.Time construction
//   - TSC: raw CPU timestamp counter scaled to nanoseconds (amd64 only)
//   - Fake: manually advanced clock for deterministic tests
//
// All readings are nanoseconds since an arbitrary origin. Only differences
// between two readings of the same clock are meaningful.
package clock

import (
	"fmt"
	"time"
)

// Clock reports monotonic time in nanoseconds.
type Clock interface {
	// Nanotime returns nanoseconds since an arbitrary, fixed origin.
	Nanotime() int64
}

// Since returns the time elapsed between start and the current reading of c.
func Since(c Clock, start int64) time.Duration {
	return time.Duration(c.Nanotime() - start)
}

// Resolution estimates the granularity of c by taking successive readings
// and returning the smallest non-zero step observed.
//
// Returns 0 if no step was observed within the probe rounds.
func Resolution(c Clock) time.Duration {
	const rounds = 64
	best := int64(0)
	for i := 0; i < rounds; i++ {
		t1 := c.Nanotime()
		t2 := c.Nanotime()
		for spin := 0; t2 == t1 && spin < 1000; spin++ {
			t2 = c.Nanotime()
		}
		dt := t2 - t1
		if dt > 0 && (best == 0 || dt < best) {
			best = dt
		}
	}
	return time.Duration(best)
}

// ByName returns the clock source for a configuration name:
// "monotonic" (default when empty), "std" or "tsc".
func ByName(name string) (Clock, error) {
	switch name {
	case "", "monotonic":
		return Monotonic(), nil
	case "std":
		return Std(), nil
	case "tsc":
		return NewTSCCalibrated()
	default:
		return nil, fmt.Errorf("clock: unknown source %q", name)
	}
}
