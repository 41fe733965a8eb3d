// Package cancel provides the stop token a periodic loop polls between cycles.
//
// The timer offers no internal cancellation: a loop checks Done once per
// cycle and exits cleanly, so the timer can be stopped and its OS resources
// released. Two implementations of the Canceler interface are provided:
//   - AtomicCanceler: a single atomic load per poll, for the control loop
//   - ContextCanceler: bridges the token to context-aware code (HTTP servers)
//
// OnSignal connects process signals (SIGINT, SIGTERM) to a token instead of
// a process-wide "running" flag.
package cancel

import (
	"context"
	"sync/atomic"
)

// Canceler is a cancellation token.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() concurrently
//   - Cancel() may be called concurrently with Done()
type Canceler interface {
	// Done returns true if cancellation has been triggered.
	Done() bool

	// Cancel triggers cancellation. Safe to call multiple times.
	Cancel()
}

// AtomicCanceler is a token backed by an atomic.Bool.
//
// Polling costs one atomic load.
type AtomicCanceler struct {
	done atomic.Bool
}

// NewAtomic creates a new AtomicCanceler.
func NewAtomic() *AtomicCanceler {
	return &AtomicCanceler{}
}

// Done reports whether Cancel was called.
func (a *AtomicCanceler) Done() bool {
	return a.done.Load()
}

// Cancel triggers cancellation. Subsequent calls are no-ops.
func (a *AtomicCanceler) Cancel() {
	a.done.Store(true)
}

// Reset re-arms the token so a stopped loop can be restarted.
// Not safe to call concurrently with Done() or Cancel().
func (a *AtomicCanceler) Reset() {
	a.done.Store(false)
}

// ContextCanceler is a token backed by a context.Context.
type ContextCanceler struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewContext creates a ContextCanceler derived from parent; cancelling the
// parent also trips the token.
func NewContext(parent context.Context) *ContextCanceler {
	ctx, cancel := context.WithCancel(parent)
	return &ContextCanceler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Done performs a non-blocking check of ctx.Done().
func (c *ContextCanceler) Done() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// Cancel cancels the context.
func (c *ContextCanceler) Cancel() {
	c.cancel()
}

// Context returns the underlying context.Context.
func (c *ContextCanceler) Context() context.Context {
	return c.ctx
}

