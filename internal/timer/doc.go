// Package timer provides a periodic wake-up primitive for fixed-rate control loops.
//
// A Timer blocks the calling goroutine once per cycle until the next cycle
// boundary, measures the elapsed time since the previous wake-up, and
// classifies each cycle:
//   - Ok: woke on schedule
//   - SignalLate: the interval notification did not arrive within MaxWait
//   - MaxWaitExceeded: the whole cycle took longer than MaxWait
//   - Interrupted: the absolute-deadline sleep was cut short
//
// Per-cycle faults are returned as Result values so the caller decides the
// policy; WaitOrError lifts them to a *CycleError for fail-fast loops.
// Misuse (waiting before Start, Stats without statistics, unsupported
// real-time scheduling) is reported as a configuration error.
//
// # Wake-up strategies
//
// Two Waker implementations are built in:
//
//   - Absolute-clock: sleeps until a precomputed deadline on the monotonic
//     clock (clock_nanosleep with TIMER_ABSTIME on Linux) and advances the
//     deadline by exactly one interval after each wake, so per-cycle jitter
//     never accumulates into drift. Intended for goroutines that obtained
//     real-time scheduling.
//   - Interval-signal: a repeating ITIMER_REAL delivers SIGALRM every
//     interval; each wait blocks until the notification or MaxWait, whichever
//     comes first. Works unprivileged. On non-Linux systems a time.Ticker
//     stands in as the notification source.
//
// With StrategyAuto (the default) Start picks the absolute-clock waker when
// EnableRealTimeScheduling succeeded and the interval-signal waker otherwise.
//
// # Usage
//
//	t, err := timer.New(100*time.Millisecond, 110*time.Millisecond, timer.WithStats(true))
//	if err != nil {
//		return err
//	}
//	if err := t.EnableRealTimeScheduling(); err != nil {
//		log.Warn(err) // continue best-effort
//	}
//	if err := t.Start(); err != nil {
//		return err
//	}
//	defer t.Stop()
//	for !token.Done() {
//		doWork()
//		if err := t.WaitOrError(); err != nil {
//			return err
//		}
//	}
//
// # Concurrency
//
// A Timer is owned by a single goroutine. It spawns no goroutines of its own
// and takes no locks; Start, Wait, Stop and Stats must be called from the
// goroutine that drives the loop. Only one interval-signal Timer may be
// started per process, since SIGALRM and ITIMER_REAL are process-wide.
package timer
