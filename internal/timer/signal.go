package timer

import (
	"os"
	"time"
)

// signalWaker waits for a periodic notification with a MaxWait timeout.
//
// The notification source (SIGALRM from ITIMER_REAL on Linux, a
// time.Ticker elsewhere) only wakes the blocked wait; timing itself is
// measured by the Timer's clock. A notification pending when Wait is
// entered is discarded, so the wait always ends on the next tick.
type signalWaker struct {
	interval time.Duration
	maxWait  time.Duration

	sig     chan os.Signal // set by the itimer source
	ticker  *time.Ticker   // set by the ticker source
	timeout *time.Timer
	armed   bool
}

func newSignalWaker() *signalWaker {
	return &signalWaker{}
}

func (w *signalWaker) Arm(interval, maxWait time.Duration) error {
	w.interval = interval
	w.maxWait = maxWait
	if err := w.armSource(); err != nil {
		return err
	}
	w.timeout = time.NewTimer(maxWait)
	w.timeout.Stop()
	w.armed = true
	return nil
}

func (w *signalWaker) Wait() Result {
	var tick <-chan time.Time
	if w.ticker != nil {
		tick = w.ticker.C
	}

	// A notification that arrived while the caller was working is stale:
	// only one delivered during the blocking wait ends it.
	select {
	case <-w.sig:
	case <-tick:
	default:
	}

	w.timeout.Reset(w.maxWait)
	select {
	case <-w.sig:
	case <-tick:
	case <-w.timeout.C:
		return SignalLate
	}
	w.timeout.Stop()
	return Ok
}

func (w *signalWaker) Disarm() {
	if !w.armed {
		return
	}
	w.disarmSource()
	w.timeout.Stop()
	w.armed = false
}

func (w *signalWaker) Mode() Mode {
	return ModeSignal
}
