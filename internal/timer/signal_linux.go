//go:build linux

package timer

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// armSource routes SIGALRM to the waker and starts a repeating ITIMER_REAL
// with period interval. The handler is installed before the timer so no
// SIGALRM can reach the default disposition.
func (w *signalWaker) armSource() error {
	w.sig = make(chan os.Signal, 1)
	signal.Notify(w.sig, unix.SIGALRM)

	period := unix.NsecToTimeval(int64(w.interval))
	it := unix.Itimerval{Interval: period, Value: period}
	if _, err := unix.Setitimer(unix.ItimerReal, it); err != nil {
		signal.Stop(w.sig)
		signal.Reset(unix.SIGALRM)
		w.sig = nil
		return err
	}
	return nil
}

// disarmSource cancels the interval timer, then restores the default
// SIGALRM disposition and drops any pending notification.
func (w *signalWaker) disarmSource() {
	_, _ = unix.Setitimer(unix.ItimerReal, unix.Itimerval{})
	signal.Stop(w.sig)
	signal.Reset(unix.SIGALRM)
	for {
		select {
		case <-w.sig:
		default:
			w.sig = nil
			return
		}
	}
}
