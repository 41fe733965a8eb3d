package combined_test

import (
	"testing"

	ring "github.com/randomizedcoder/go-lock-free-ring"

	"github.com/randomizedcoder/periodic/internal/queue"
	"github.com/randomizedcoder/periodic/internal/timer"
)

// ============================================================================
// Sample hand-off: control loop -> output goroutine
// ============================================================================
//
// The loop is the only producer, so the SPSC RingBuffer is the natural fit.
// go-lock-free-ring is sharded MPSC; with one shard it shows the cost of
// that generality.

func BenchmarkHandoff_Channel(b *testing.B) {
	ch := make(chan timer.Sample, 1024)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ch:
			}
		}
	}()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ch <- timer.Sample{Seq: uint64(i)}
	}

	b.StopTimer()
	close(done)
}

func BenchmarkHandoff_RingBuffer(b *testing.B) {
	q := queue.NewRingBuffer[timer.Sample](1024)
	done := make(chan struct{})

	// Consumer goroutine (single consumer - SPSC contract)
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				q.Pop()
			}
		}
	}()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for !q.Push(timer.Sample{Seq: uint64(i)}) {
		}
	}

	b.StopTimer()
	close(done)
}

func BenchmarkHandoff_LockFreeRing(b *testing.B) {
	r, err := ring.NewShardedRing(1024, 1)
	if err != nil {
		b.Fatal(err)
	}
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			default:
				r.TryRead()
			}
		}
	}()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for !r.Write(0, timer.Sample{Seq: uint64(i)}) {
		}
	}

	b.StopTimer()
	close(done)
}

// Offer never waits; drops show how far the consumer fell behind.
func BenchmarkHandoff_RingBuffer_Offer(b *testing.B) {
	q := queue.NewRingBuffer[timer.Sample](1024)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			default:
				q.Drain(func(timer.Sample) {})
			}
		}
	}()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		q.Offer(timer.Sample{Seq: uint64(i)})
	}

	b.StopTimer()
	close(done)
	b.ReportMetric(float64(q.Dropped())/float64(b.N), "drops/op")
}
