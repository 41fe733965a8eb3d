package timer

import (
	"errors"
	"fmt"
	"time"
)

// Configuration errors. These are returned immediately and are always fatal
// to the operation that produced them.
var (
	// ErrInvalidConfig is returned by New for non-positive durations or
	// out-of-range options.
	ErrInvalidConfig = errors.New("timer: invalid configuration")

	// ErrPrecision is returned by New when a duration is finer than the
	// OS interval timer can represent.
	ErrPrecision = errors.New("timer: insufficient precision")

	// ErrNotStarted is returned by Wait before Start.
	ErrNotStarted = errors.New("timer: not started")

	// ErrAlreadyStarted is returned by Start on a started timer.
	ErrAlreadyStarted = errors.New("timer: already started")

	// ErrStatsDisabled is returned by Stats on a timer built without statistics.
	ErrStatsDisabled = errors.New("timer: stats not enabled")

	// ErrRealTimeUnsupported is returned by EnableRealTimeScheduling when the
	// platform, the build, or the OS refuses a real-time scheduling class.
	ErrRealTimeUnsupported = errors.New("timer: real-time scheduling unavailable")
)

// Per-cycle faults, as returned by Result.Err. Every *CycleError also
// matches ErrCycle.
var (
	ErrCycle           = errors.New("timer: cycle fault")
	ErrSignalLate      = errors.New("timer: signal was late")
	ErrMaxWaitExceeded = errors.New("timer: max wait exceeded")
	ErrInterrupted     = errors.New("timer: wait interrupted")
)

// CycleError describes a faulty cycle for callers that prefer fail-fast
// semantics. errors.Is matches ErrCycle and the per-result sentinel
// (ErrSignalLate, ErrMaxWaitExceeded, ErrInterrupted).
type CycleError struct {
	Result  Result
	DT      time.Duration
	MaxWait time.Duration
}

func (e *CycleError) Error() string {
	switch e.Result {
	case MaxWaitExceeded:
		return fmt.Sprintf("timer: cycle time %v exceeded maximum: %v", e.DT, e.MaxWait)
	case SignalLate:
		return "timer: signal was late"
	case Interrupted:
		return "timer: sleep interrupted by signal"
	default:
		return "timer: cycle " + e.Result.String()
	}
}

// Unwrap returns the sentinel for the cycle's result.
func (e *CycleError) Unwrap() error {
	return e.Result.Err()
}

// Is reports whether target is ErrCycle.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}
