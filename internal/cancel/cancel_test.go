package cancel_test

import (
	"context"
	"sync"
	"testing"

	"github.com/randomizedcoder/periodic/internal/cancel"
)

func implementations() []struct {
	name string
	c    cancel.Canceler
} {
	return []struct {
		name string
		c    cancel.Canceler
	}{
		{"Context", cancel.NewContext(context.Background())},
		{"Atomic", cancel.NewAtomic()},
	}
}

func TestCanceler(t *testing.T) {
	for _, tc := range implementations() {
		t.Run(tc.name, func(t *testing.T) {
			if tc.c.Done() {
				t.Error("expected Done() = false initially")
			}

			tc.c.Cancel()
			if !tc.c.Done() {
				t.Error("expected Done() = true after Cancel()")
			}

			// Verify idempotent
			tc.c.Cancel()
			if !tc.c.Done() {
				t.Error("expected Done() = true after second Cancel()")
			}
		})
	}
}

// Run with: go test -race ./internal/cancel
func TestCanceler_Race(t *testing.T) {
	for _, tc := range implementations() {
		t.Run(tc.name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 10000; j++ {
						_ = tc.c.Done()
					}
				}()
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				tc.c.Cancel()
			}()
			wg.Wait()

			if !tc.c.Done() {
				t.Error("expected Done() = true after Cancel()")
			}
		})
	}
}

func TestAtomicCanceler_Reset(t *testing.T) {
	c := cancel.NewAtomic()

	c.Cancel()
	c.Reset()
	if c.Done() {
		t.Error("expected Done() = false after Reset()")
	}
}

func TestContextCanceler_ParentCancels(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	c := cancel.NewContext(parent)

	if c.Done() {
		t.Fatal("expected Done() = false before parent is cancelled")
	}
	cancelParent()
	if !c.Done() {
		t.Error("expected Done() = true after parent is cancelled")
	}
}

func TestContextCanceler_Context(t *testing.T) {
	c := cancel.NewContext(context.Background())
	ctx := c.Context()

	select {
	case <-ctx.Done():
		t.Error("expected context to not be done")
	default:
	}

	c.Cancel()

	select {
	case <-ctx.Done():
	default:
		t.Error("expected context to be done after Cancel()")
	}
}
