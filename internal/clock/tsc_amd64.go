//go:build amd64

package clock

import (
	"errors"
	"time"
)

// ErrTSCNotSupported is returned when TSC is not available on this architecture.
var ErrTSCNotSupported = errors.New("clock: TSC clock requires amd64 architecture")

// rdtsc reads the CPU's Time Stamp Counter.
// Implemented in tsc_amd64.s
func rdtsc() uint64

// CalibrateTSC measures CPU cycles per nanosecond.
//
// This performs a ~10ms calibration by comparing TSC ticks against
// the monotonic clock. The result is approximate and can vary with:
//   - CPU frequency scaling (Turbo Boost, SpeedStep)
//   - Power management states
//   - Thermal throttling
//
// For best results, run on a warmed-up CPU with frequency governor
// set to "performance".
func CalibrateTSC() (float64, error) {
	rdtsc()
	rdtsc()

	start := rdtsc()
	t1 := nanotime()
	time.Sleep(10 * time.Millisecond)
	end := rdtsc()
	t2 := nanotime()

	nanos := float64(t2 - t1)
	if nanos <= 0 || end <= start {
		return 0, errors.New("clock: TSC calibration observed no progress")
	}
	return float64(end-start) / nanos, nil
}

// TSCClock converts the CPU timestamp counter into nanoseconds.
//
// Cheapest reading available on x86, but it may drift with frequency
// changes on CPUs without an invariant TSC. Prefer Monotonic unless
// reading cost dominates.
type TSCClock struct {
	base        uint64
	cyclesPerNs float64
}

// NewTSC creates a TSCClock with an explicit cycles-per-nanosecond ratio.
func NewTSC(cyclesPerNs float64) (*TSCClock, error) {
	if cyclesPerNs <= 0 {
		return nil, errors.New("clock: cycles per nanosecond must be > 0")
	}
	return &TSCClock{base: rdtsc(), cyclesPerNs: cyclesPerNs}, nil
}

// NewTSCCalibrated creates a TSCClock with automatic calibration.
//
// This blocks for ~10ms while calibrating.
func NewTSCCalibrated() (*TSCClock, error) {
	ratio, err := CalibrateTSC()
	if err != nil {
		return nil, err
	}
	return NewTSC(ratio)
}

// Nanotime returns nanoseconds since the clock was created.
func (c *TSCClock) Nanotime() int64 {
	return int64(float64(rdtsc()-c.base) / c.cyclesPerNs)
}

// CyclesPerNs returns the calibrated cycles-per-nanosecond ratio.
func (c *TSCClock) CyclesPerNs() float64 {
	return c.cyclesPerNs
}
