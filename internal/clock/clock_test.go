package clock_test

import (
	"testing"
	"time"

	"github.com/randomizedcoder/periodic/internal/clock"
)

func testAdvances(t *testing.T, c clock.Clock, name string) {
	t.Helper()

	start := c.Nanotime()
	time.Sleep(20 * time.Millisecond)
	elapsed := clock.Since(c, start)

	// Allow generous slack for loaded CI machines
	if elapsed < 15*time.Millisecond || elapsed > 500*time.Millisecond {
		t.Errorf("%s: expected ~20ms elapsed, got %v", name, elapsed)
	}
}

func TestStdClock(t *testing.T) {
	testAdvances(t, clock.Std(), "StdClock")
}

func TestMonotonicClock(t *testing.T) {
	testAdvances(t, clock.Monotonic(), "MonotonicClock")
}

func TestMonotonicClock_NeverGoesBack(t *testing.T) {
	c := clock.Monotonic()
	prev := c.Nanotime()
	for i := 0; i < 10000; i++ {
		now := c.Nanotime()
		if now < prev {
			t.Fatalf("reading %d went backwards: %d < %d", i, now, prev)
		}
		prev = now
	}
}

func TestFakeClock(t *testing.T) {
	c := clock.NewFake(1000)
	if got := c.Nanotime(); got != 1000 {
		t.Errorf("expected start reading 1000, got %d", got)
	}

	c.Advance(5 * time.Millisecond)
	if got := clock.Since(c, 1000); got != 5*time.Millisecond {
		t.Errorf("expected 5ms since start, got %v", got)
	}

	c.Advance(-time.Millisecond)
	if got := clock.Since(c, 1000); got != 4*time.Millisecond {
		t.Errorf("expected 4ms after moving back, got %v", got)
	}

	c.Set(0)
	if got := c.Nanotime(); got != 0 {
		t.Errorf("expected 0 after Set, got %d", got)
	}
}

func TestResolution(t *testing.T) {
	res := clock.Resolution(clock.Monotonic())
	if res <= 0 || res > time.Millisecond {
		t.Errorf("expected monotonic resolution in (0, 1ms], got %v", res)
	}

	// A frozen clock never steps
	if res := clock.Resolution(clock.NewFake(0)); res != 0 {
		t.Errorf("expected 0 resolution for frozen fake clock, got %v", res)
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"", "monotonic", "std"} {
		c, err := clock.ByName(name)
		if err != nil {
			t.Errorf("ByName(%q): unexpected error %v", name, err)
			continue
		}
		if c == nil {
			t.Errorf("ByName(%q): nil clock", name)
		}
	}

	if _, err := clock.ByName("sundial"); err == nil {
		t.Error("expected error for unknown clock source")
	}
}
