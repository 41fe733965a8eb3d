//go:build linux && !nort

package timer

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// setRealTime locks the calling goroutine to its OS thread and switches the
// thread to SCHED_FIFO. The lock is released again if the request fails.
func setRealTime(priority int) error {
	runtime.LockOSThread()
	attr := unix.SchedAttr{
		Policy:   unix.SCHED_FIFO,
		Priority: uint32(priority),
	}
	if err := unix.SchedSetAttr(0, &attr, 0); err != nil {
		runtime.UnlockOSThread()
		return err
	}
	return nil
}
