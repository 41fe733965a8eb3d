package timer

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/randomizedcoder/periodic/internal/clock"
	"github.com/randomizedcoder/periodic/internal/stats"
)

// Config holds the immutable timing parameters of a Timer.
type Config struct {
	// Interval is the nominal cycle duration.
	Interval time.Duration

	// MaxWait is the longest tolerable cycle. Expected to be >= Interval.
	MaxWait time.Duration
}

// Timer paces a control loop at a fixed nominal rate.
//
// Not safe for concurrent use; see the package documentation.
type Timer struct {
	cfg  Config
	opts options
	log  logrus.FieldLogger

	realTime bool
	waker    Waker

	started bool
	last    int64
	dt      time.Duration
	seq     uint64
	sample  Sample

	acc *stats.Accumulator
}

// New creates a stopped Timer.
//
// interval and maxWait must be positive and representable by the OS
// interval timer (microsecond resolution). maxWait < interval is accepted
// but logged, as every cycle would then be classified as a fault.
func New(interval, maxWait time.Duration, opts ...Option) (*Timer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if interval <= 0 || maxWait <= 0 {
		return nil, fmt.Errorf("%w: interval %v and max wait %v must be > 0", ErrInvalidConfig, interval, maxWait)
	}
	if interval < time.Microsecond || maxWait < time.Microsecond {
		return nil, fmt.Errorf("%w: interval %v and max wait %v must be >= 1µs", ErrPrecision, interval, maxWait)
	}
	if o.unit <= 0 {
		return nil, fmt.Errorf("%w: unit %v must be > 0", ErrInvalidConfig, o.unit)
	}
	if o.priority < 1 || o.priority > 99 {
		return nil, fmt.Errorf("%w: priority %d out of range 1-99", ErrInvalidConfig, o.priority)
	}
	if o.strategy > StrategySignal {
		return nil, fmt.Errorf("%w: unknown strategy %d", ErrInvalidConfig, o.strategy)
	}

	t := &Timer{
		cfg:  Config{Interval: interval, MaxWait: maxWait},
		opts: o,
		log:  o.log.WithFields(logrus.Fields{"interval": interval, "max_wait": maxWait}),
	}
	if o.stats {
		t.acc = stats.New(stats.WithUnit(o.unit), stats.WithTETMode(o.tetMode))
	}
	if maxWait < interval {
		t.log.Warn("timer: max wait shorter than interval, every cycle will be reported as a fault")
	}
	return t, nil
}

// Config returns the timing parameters.
func (t *Timer) Config() Config {
	return t.cfg
}

// Interval returns the nominal cycle duration.
func (t *Timer) Interval() time.Duration {
	return t.cfg.Interval
}

// MaxWait returns the longest tolerable cycle.
func (t *Timer) MaxWait() time.Duration {
	return t.cfg.MaxWait
}

// Started reports whether the timer is armed.
func (t *Timer) Started() bool {
	return t.started
}

// Mode returns the armed wake-up strategy, or ModeNone when stopped.
func (t *Timer) Mode() Mode {
	if !t.started || t.waker == nil {
		return ModeNone
	}
	return t.waker.Mode()
}

// RealTime reports whether EnableRealTimeScheduling succeeded.
func (t *Timer) RealTime() bool {
	return t.realTime
}

// String describes the configured interval and max wait.
func (t *Timer) String() string {
	return fmt.Sprintf("Interval: %v\nMax wait: %v\n", t.cfg.Interval, t.cfg.MaxWait)
}

// EnableRealTimeScheduling moves the calling goroutine onto a dedicated OS
// thread running under SCHED_FIFO at the configured priority.
//
// On success the goroutine stays locked to that thread for the rest of its
// life; Start, Wait and Stop must be called from it. The returned error wraps
// ErrRealTimeUnsupported; callers are expected to continue in best-effort
// mode.
func (t *Timer) EnableRealTimeScheduling() error {
	if err := setRealTime(t.opts.priority); err != nil {
		t.log.WithError(err).Debug("timer: real-time scheduling refused")
		return fmt.Errorf("%w: %v", ErrRealTimeUnsupported, err)
	}
	t.realTime = true
	t.log.WithField("priority", t.opts.priority).Debug("timer: real-time scheduling enabled")
	return nil
}

// Start records the reference wake-up, arms the wake-up strategy and resets
// the statistics. The first sample after Start is a warm-up sample.
func (t *Timer) Start() error {
	if t.started {
		return ErrAlreadyStarted
	}

	w := t.selectWaker()
	t.last = t.opts.clock.Nanotime()
	if err := w.Arm(t.cfg.Interval, t.cfg.MaxWait); err != nil {
		return fmt.Errorf("timer: arm %s wake-up: %w", w.Mode(), err)
	}

	t.waker = w
	t.dt = 0
	t.seq = 0
	t.sample = Sample{}
	if t.acc != nil {
		t.acc.Reset()
	}
	t.started = true
	t.log.WithField("mode", w.Mode()).Debug("timer: started")
	return nil
}

func (t *Timer) selectWaker() Waker {
	if t.opts.waker != nil {
		return t.opts.waker
	}
	switch t.opts.strategy {
	case StrategyAbsolute:
		return newAbsoluteWaker()
	case StrategySignal:
		return newSignalWaker()
	default:
		if t.realTime {
			return newAbsoluteWaker()
		}
		return newSignalWaker()
	}
}

// Stop disarms the wake-up strategy and resets the statistics.
//
// Idempotent; a no-op on a timer that was never started.
func (t *Timer) Stop() {
	if t.started && t.waker != nil {
		t.waker.Disarm()
		t.log.WithField("cycles", t.seq).Debug("timer: stopped")
	}
	if t.acc != nil {
		t.acc.Reset()
	}
	t.started = false
}

// Wait blocks until the next cycle boundary and classifies the cycle.
//
// The error is non-nil only for misuse (ErrNotStarted); timing faults are
// reported through the Result.
func (t *Timer) Wait() (Result, error) {
	if !t.started {
		return Ok, ErrNotStarted
	}

	var preSleep int64
	if t.acc != nil {
		preSleep = t.opts.clock.Nanotime()
	}

	res := t.waker.Wait()

	now := t.opts.clock.Nanotime()
	dt := time.Duration(now - t.last)
	t.last = now
	if dt < 0 {
		t.log.WithField("dt", dt).Warn("timer: clock went backwards")
		dt = 0
		res = Interrupted
	}
	if dt > t.cfg.MaxWait {
		res = MaxWaitExceeded
	}

	t.dt = dt
	t.seq++
	s := Sample{Seq: t.seq, DT: dt, Result: res}
	if t.acc != nil {
		s.TET = dt - time.Duration(now-preSleep)
		if s.TET < 0 {
			s.TET = 0
		}
		t.acc.Observe(dt, s.TET, res == Ok)
	}
	t.sample = s
	return res, nil
}

// WaitOrError is Wait for fail-fast callers: any fault is returned as a
// *CycleError, misuse as the configuration error.
func (t *Timer) WaitOrError() error {
	res, err := t.Wait()
	if err != nil {
		return err
	}
	if res == Ok {
		return nil
	}
	return &CycleError{Result: res, DT: t.dt, MaxWait: t.cfg.MaxWait}
}

// LastDT returns the elapsed time measured by the latest Wait.
func (t *Timer) LastDT() time.Duration {
	return t.dt
}

// LastSample returns the measurement of the latest Wait.
func (t *Timer) LastSample() Sample {
	return t.sample
}

// Stats returns the accumulated statistics.
func (t *Timer) Stats() (stats.Snapshot, error) {
	if t.acc == nil {
		return stats.Snapshot{}, ErrStatsDisabled
	}
	return t.acc.Snapshot(), nil
}

// Clock returns the clock measuring cycle durations.
func (t *Timer) Clock() clock.Clock {
	return t.opts.clock
}
