//go:build linux

package timer

import "golang.org/x/sys/unix"

// monoNow reads CLOCK_MONOTONIC, the clock sleepUntil sleeps against.
func monoNow() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0
	}
	return ts.Nano()
}

// sleepUntil suspends the calling thread until the absolute CLOCK_MONOTONIC
// time deadline. A signal delivered to the thread ends the sleep early with
// EINTR.
func sleepUntil(deadline int64) error {
	ts := unix.NsecToTimespec(deadline)
	return unix.ClockNanosleep(unix.CLOCK_MONOTONIC, unix.TIMER_ABSTIME, &ts, nil)
}
