package timer

import (
	"fmt"
	"time"
)

// Waker blocks the caller until the next cycle boundary.
//
// Implementations hold the schedule state of one strategy. They are driven
// from a single goroutine: Arm, then Wait once per cycle, then Disarm.
type Waker interface {
	// Arm prepares the schedule. The first boundary is one interval from now.
	Arm(interval, maxWait time.Duration) error

	// Wait blocks until the next boundary and reports Ok, SignalLate or
	// Interrupted. Timing against MaxWait is classified by the Timer.
	Wait() Result

	// Disarm releases OS resources. Safe to call more than once.
	Disarm()

	// Mode identifies the strategy.
	Mode() Mode
}

// Mode identifies an armed wake-up strategy.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeAbsolute
	ModeSignal
	ModeExternal
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeAbsolute:
		return "absolute"
	case ModeSignal:
		return "signal"
	case ModeExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Strategy selects the wake-up strategy at Start.
type Strategy uint8

const (
	// StrategyAuto uses the absolute-clock waker when real-time scheduling
	// was obtained and the interval-signal waker otherwise.
	StrategyAuto Strategy = iota
	StrategyAbsolute
	StrategySignal
)

// String returns the strategy name used in configuration.
func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyAbsolute:
		return "absolute"
	case StrategySignal:
		return "signal"
	default:
		return "unknown"
	}
}

// ParseStrategy parses "auto", "absolute" or "signal".
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "auto":
		return StrategyAuto, nil
	case "absolute":
		return StrategyAbsolute, nil
	case "signal":
		return StrategySignal, nil
	default:
		return StrategyAuto, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, s)
	}
}
