//go:build !linux

package timer

import (
	"time"

	"github.com/randomizedcoder/periodic/internal/clock"
)

var mono = clock.Monotonic()

func monoNow() int64 {
	return mono.Nanotime()
}

// sleepUntil approximates an absolute sleep with a relative one computed
// against the runtime monotonic clock. It is never interrupted.
func sleepUntil(deadline int64) error {
	if d := time.Duration(deadline - mono.Nanotime()); d > 0 {
		time.Sleep(d)
	}
	return nil
}
