package clock

import (
	_ "unsafe" // Required for go:linkname
)

// nanotime returns the current monotonic time in nanoseconds.
// This is faster than time.Now() because it returns a single int64
// and avoids constructing a time.Time struct.
//
// Note: This uses go:linkname to access an internal runtime function.
// It may break in future Go versions, though it has been stable.
//
//go:linkname nanotime runtime.nanotime
func nanotime() int64

// MonotonicClock reads the runtime's monotonic clock directly.
//
// On Linux this is CLOCK_MONOTONIC, the same clock the absolute-deadline
// wake-up strategy sleeps against.
type MonotonicClock struct{}

// Monotonic returns the runtime monotonic clock.
func Monotonic() MonotonicClock {
	return MonotonicClock{}
}

// Nanotime returns runtime.nanotime().
func (MonotonicClock) Nanotime() int64 {
	return nanotime()
}
