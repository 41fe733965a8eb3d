package combined_test

import (
	"context"
	"testing"
	"time"

	"github.com/randomizedcoder/periodic/internal/cancel"
	"github.com/randomizedcoder/periodic/internal/clock"
	"github.com/randomizedcoder/periodic/internal/queue"
	"github.com/randomizedcoder/periodic/internal/timer"
)

// Sink variables
var sinkSample timer.Sample
var sinkBool bool

const benchInterval = time.Millisecond

// instantWaker wakes immediately, one interval later on a fake clock.
type instantWaker struct {
	clk      *clock.FakeClock
	interval time.Duration
}

func (w *instantWaker) Arm(interval, _ time.Duration) error {
	w.interval = interval
	return nil
}

func (w *instantWaker) Wait() timer.Result {
	w.clk.Advance(w.interval)
	return timer.Ok
}

func (w *instantWaker) Disarm() {}

func (w *instantWaker) Mode() timer.Mode { return timer.ModeExternal }

func newBenchTimer(b *testing.B, withStats bool) *timer.Timer {
	b.Helper()
	clk := clock.NewFake(0)
	t, err := timer.New(benchInterval, 2*benchInterval,
		timer.WithStats(withStats),
		timer.WithClock(clk),
		timer.WithWaker(&instantWaker{clk: clk}),
	)
	if err != nil {
		b.Fatal(err)
	}
	if err := t.Start(); err != nil {
		b.Fatal(err)
	}
	b.Cleanup(t.Stop)
	return t
}

// ============================================================================
// Timer bookkeeping
// ============================================================================

func BenchmarkLoop_Wait_NoStats(b *testing.B) {
	t := newBenchTimer(b, false)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		t.Wait()
	}
	sinkSample = t.LastSample()
}

func BenchmarkLoop_Wait_Stats(b *testing.B) {
	t := newBenchTimer(b, true)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		t.Wait()
	}
	sinkSample = t.LastSample()
}

func BenchmarkLoop_WaitOrError_Stats(b *testing.B) {
	t := newBenchTimer(b, true)
	b.ReportAllocs()
	b.ResetTimer()

	var err error
	for i := 0; i < b.N; i++ {
		err = t.WaitOrError()
	}
	sinkBool = err == nil
}

// ============================================================================
// Full loop (cancel + wait + hand-off)
// ============================================================================

func benchFullLoop(b *testing.B, c cancel.Canceler) {
	t := newBenchTimer(b, true)
	q := queue.NewRingBuffer[timer.Sample](1024)
	b.ReportAllocs()
	b.ResetTimer()

	var cancelled bool
	for i := 0; i < b.N; i++ {
		if cancelled = c.Done(); cancelled {
			break
		}
		t.Wait()
		q.Offer(t.LastSample())
		q.Pop()
	}
	sinkBool = cancelled
}

func BenchmarkLoop_Full_Context(b *testing.B) {
	benchFullLoop(b, cancel.NewContext(context.Background()))
}

func BenchmarkLoop_Full_Atomic(b *testing.B) {
	benchFullLoop(b, cancel.NewAtomic())
}
