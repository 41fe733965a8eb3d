// Package queue hands cycle samples from a periodic control loop to a
// consumer goroutine without blocking the loop.
//
// RingBuffer is a Single-Producer Single-Consumer (SPSC) queue. The control
// loop is the only producer and the output goroutine the only consumer.
// It is NOT safe for multiple goroutines to call Push() or Pop() concurrently;
// runtime guards panic on misuse.
//
// The producer never waits: when the consumer falls behind, Offer drops the
// value and counts it so the loop keeps its period.
package queue

// Queue is a non-blocking single-producer single-consumer queue.
type Queue[T any] interface {
	// Push adds an item to the queue.
	// Returns false if the queue is full.
	Push(T) bool

	// Pop removes and returns an item from the queue.
	// Returns false if the queue is empty.
	Pop() (T, bool)
}
