package queue

import (
	"sync/atomic"
)

// RingBuffer is a lock-free SPSC (Single-Producer Single-Consumer) queue.
//
// WARNING: This queue is NOT safe for multiple producers or multiple consumers.
// The implementation includes runtime guards that panic if the SPSC contract
// is violated.
type RingBuffer[T any] struct {
	buf  []T
	mask uint64

	// Cache line padding to prevent false sharing
	_pad0 [56]byte //nolint:unused

	head atomic.Uint64 // Written by producer, read by consumer

	_pad1 [56]byte //nolint:unused

	tail atomic.Uint64 // Written by consumer, read by producer

	_pad2 [56]byte //nolint:unused

	dropped atomic.Uint64 // Written by producer

	// SPSC guards
	pushActive atomic.Uint32
	popActive  atomic.Uint32
}

var _ Queue[int] = (*RingBuffer[int])(nil)

// NewRingBuffer creates a RingBuffer holding at least size items.
// Size is rounded up to the next power of 2.
func NewRingBuffer[T any](size int) *RingBuffer[T] {
	n := uint64(1)
	for n < uint64(size) {
		n <<= 1
	}

	return &RingBuffer[T]{
		buf:  make([]T, n),
		mask: n - 1,
	}
}

// Push adds an item to the queue.
// Returns false if the queue is full.
//
// SPSC CONTRACT: Only ONE goroutine may call Push() or Offer().
func (r *RingBuffer[T]) Push(v T) bool {
	if !r.pushActive.CompareAndSwap(0, 1) {
		panic("queue: concurrent Push on SPSC RingBuffer - only one producer allowed")
	}
	defer r.pushActive.Store(0)

	head := r.head.Load()
	tail := r.tail.Load()

	if head-tail >= uint64(len(r.buf)) {
		return false
	}

	r.buf[head&r.mask] = v

	// Publish
	r.head.Store(head + 1)

	return true
}

// Offer pushes v, counting it as dropped when the queue is full.
func (r *RingBuffer[T]) Offer(v T) bool {
	if r.Push(v) {
		return true
	}
	r.dropped.Add(1)
	return false
}

// Pop removes and returns an item from the queue.
// Returns false if the queue is empty.
//
// SPSC CONTRACT: Only ONE goroutine may call Pop() or Drain().
func (r *RingBuffer[T]) Pop() (T, bool) {
	if !r.popActive.CompareAndSwap(0, 1) {
		panic("queue: concurrent Pop on SPSC RingBuffer - only one consumer allowed")
	}
	defer r.popActive.Store(0)

	tail := r.tail.Load()
	head := r.head.Load()

	if tail >= head {
		var zero T
		return zero, false
	}

	v := r.buf[tail&r.mask]
	var zero T
	r.buf[tail&r.mask] = zero

	// Consume
	r.tail.Store(tail + 1)

	return v, true
}

// Drain pops every queued item, calling fn for each in FIFO order.
// It returns the number of items drained.
func (r *RingBuffer[T]) Drain(fn func(T)) int {
	n := 0
	for {
		v, ok := r.Pop()
		if !ok {
			return n
		}
		fn(v)
		n++
	}
}

// Len returns the current number of items in the queue.
// This is an approximation and may be slightly stale.
func (r *RingBuffer[T]) Len() int {
	head := r.head.Load()
	tail := r.tail.Load()
	return int(head - tail)
}

// Cap returns the capacity of the queue.
func (r *RingBuffer[T]) Cap() int {
	return len(r.buf)
}

// Dropped returns how many values Offer discarded because the queue was full.
func (r *RingBuffer[T]) Dropped() uint64 {
	return r.dropped.Load()
}
