package timer

import "time"

// absoluteWaker sleeps until a monotonically advancing absolute deadline.
//
// The deadline is advanced by exactly one interval after every wake, never
// rebased on the wake-up time, so jitter in individual wakes does not
// accumulate. A caller that overruns several intervals gets immediate
// returns until the schedule has caught up.
type absoluteWaker struct {
	interval int64
	next     int64
}

func newAbsoluteWaker() *absoluteWaker {
	return &absoluteWaker{}
}

func (w *absoluteWaker) Arm(interval, _ time.Duration) error {
	w.interval = int64(interval)
	w.next = monoNow() + w.interval
	return nil
}

func (w *absoluteWaker) Wait() Result {
	res := Ok
	if err := sleepUntil(w.next); err != nil {
		res = Interrupted
	}
	w.next += w.interval
	return res
}

func (w *absoluteWaker) Disarm() {}

func (w *absoluteWaker) Mode() Mode {
	return ModeAbsolute
}
