package timer

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/randomizedcoder/periodic/internal/clock"
	"github.com/randomizedcoder/periodic/internal/stats"
)

// DefaultPriority is the SCHED_FIFO priority requested by
// EnableRealTimeScheduling: the lowest real-time priority.
const DefaultPriority = 1

// Option configures a Timer.
type Option func(*options)

type options struct {
	stats    bool
	unit     time.Duration
	tetMode  stats.TETMode
	strategy Strategy
	waker    Waker
	clock    clock.Clock
	log      logrus.FieldLogger
	priority int
}

func defaultOptions() options {
	discard := logrus.New()
	discard.Out = io.Discard
	return options{
		unit:     time.Second,
		strategy: StrategyAuto,
		clock:    clock.Monotonic(),
		log:      discard,
		priority: DefaultPriority,
	}
}

// WithStats enables the statistics accumulator.
func WithStats(enabled bool) Option {
	return func(o *options) { o.stats = enabled }
}

// WithUnit sets the unit of reported statistics (default time.Second).
func WithUnit(unit time.Duration) Option {
	return func(o *options) { o.unit = unit }
}

// WithTETMode selects how the reported TET is derived.
func WithTETMode(m stats.TETMode) Option {
	return func(o *options) { o.tetMode = m }
}

// WithStrategy forces a wake-up strategy instead of StrategyAuto.
func WithStrategy(s Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// WithWaker installs a caller-provided wake-up provider. It takes
// precedence over the strategy.
func WithWaker(w Waker) Option {
	return func(o *options) { o.waker = w }
}

// WithClock sets the clock used to measure cycle durations.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithPriority sets the SCHED_FIFO priority (1-99) used by
// EnableRealTimeScheduling.
func WithPriority(p int) Option {
	return func(o *options) { o.priority = p }
}
