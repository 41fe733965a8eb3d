//go:build !amd64

package clock

import "errors"

// ErrTSCNotSupported is returned when TSC is not available on this architecture.
var ErrTSCNotSupported = errors.New("clock: TSC clock requires amd64 architecture")

// TSCClock is a stub for non-amd64 architectures.
// Use Monotonic instead for cross-platform code.
type TSCClock struct{}

// CalibrateTSC returns an error on non-amd64 architectures.
func CalibrateTSC() (float64, error) {
	return 0, ErrTSCNotSupported
}

// NewTSC returns an error on non-amd64 architectures.
func NewTSC(cyclesPerNs float64) (*TSCClock, error) {
	return nil, ErrTSCNotSupported
}

// NewTSCCalibrated returns an error on non-amd64 architectures.
func NewTSCCalibrated() (*TSCClock, error) {
	return nil, ErrTSCNotSupported
}

// Nanotime always returns 0 on the stub implementation.
func (c *TSCClock) Nanotime() int64 { return 0 }

// CyclesPerNs returns 0 on the stub implementation.
func (c *TSCClock) CyclesPerNs() float64 { return 0 }
