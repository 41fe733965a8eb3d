//go:build !linux

package timer

import "time"

// armSource uses a time.Ticker as the periodic notification source where
// ITIMER_REAL is not wired up.
func (w *signalWaker) armSource() error {
	w.ticker = time.NewTicker(w.interval)
	return nil
}

func (w *signalWaker) disarmSource() {
	w.ticker.Stop()
	w.ticker = nil
}
