package clock_test

import (
	"testing"
	"time"

	"github.com/randomizedcoder/periodic/internal/clock"
)

// Sink variable to prevent compiler from eliminating benchmark loops
var sinkNanos int64

// Direct type benchmarks (true performance floor)

func BenchmarkClock_Std_Direct(b *testing.B) {
	c := clock.Std()
	b.ReportAllocs()
	b.ResetTimer()

	var result int64
	for i := 0; i < b.N; i++ {
		result = c.Nanotime()
	}
	sinkNanos = result
}

func BenchmarkClock_Monotonic_Direct(b *testing.B) {
	c := clock.Monotonic()
	b.ReportAllocs()
	b.ResetTimer()

	var result int64
	for i := 0; i < b.N; i++ {
		result = c.Nanotime()
	}
	sinkNanos = result
}

func BenchmarkClock_TimeNow(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	var result time.Time
	for i := 0; i < b.N; i++ {
		result = time.Now()
	}
	sinkNanos = result.UnixNano()
}

// Interface benchmarks (with dynamic dispatch overhead)

func BenchmarkClock_Std_Interface(b *testing.B) {
	var c clock.Clock = clock.Std()
	b.ReportAllocs()
	b.ResetTimer()

	var result int64
	for i := 0; i < b.N; i++ {
		result = c.Nanotime()
	}
	sinkNanos = result
}

func BenchmarkClock_Monotonic_Interface(b *testing.B) {
	var c clock.Clock = clock.Monotonic()
	b.ReportAllocs()
	b.ResetTimer()

	var result int64
	for i := 0; i < b.N; i++ {
		result = c.Nanotime()
	}
	sinkNanos = result
}

func BenchmarkClock_TSC_Interface(b *testing.B) {
	c, err := clock.NewTSCCalibrated()
	if err != nil {
		b.Skip(err)
	}
	var ci clock.Clock = c
	b.ReportAllocs()
	b.ResetTimer()

	var result int64
	for i := 0; i < b.N; i++ {
		result = ci.Nanotime()
	}
	sinkNanos = result
}
