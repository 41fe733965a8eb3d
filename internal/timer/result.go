package timer

import "time"

// Result classifies one cycle.
//
// The numeric values are stable and used in recorded traces.
type Result int8

const (
	Ok              Result = 0
	SignalLate      Result = -1
	MaxWaitExceeded Result = -2
	Interrupted     Result = -3
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case Ok:
		return "ok"
	case SignalLate:
		return "signal_late"
	case MaxWaitExceeded:
		return "max_wait_exceeded"
	case Interrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Err returns nil for Ok and the matching sentinel otherwise.
func (r Result) Err() error {
	switch r {
	case Ok:
		return nil
	case SignalLate:
		return ErrSignalLate
	case MaxWaitExceeded:
		return ErrMaxWaitExceeded
	case Interrupted:
		return ErrInterrupted
	default:
		return ErrInterrupted
	}
}

// Results lists every classification, in severity order.
var Results = []Result{Ok, SignalLate, Interrupted, MaxWaitExceeded}

// Sample is the measurement of one cycle.
type Sample struct {
	// Seq counts cycles since Start, starting at 1.
	Seq uint64

	// DT is the elapsed time since the previous wake-up.
	DT time.Duration

	// TET is the portion of DT that elapsed before the blocking wait was
	// entered. Only measured when statistics are enabled.
	TET time.Duration

	Result Result
}
