// Package combined benchmarks one iteration of a periodic control loop as a
// whole: the cancellation check, the timer bookkeeping around the wake-up,
// and the hand-off of the cycle sample to the output goroutine.
//
// The wake-up itself is replaced by a waker that returns immediately and
// advances a fake clock, so the numbers are the loop's own overhead on top
// of the interval.
package combined
