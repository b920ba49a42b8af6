// Package queue holds rows waiting for a batched write.
package queue

import "sync"

// Queue is a thread-safe FIFO of pending rows. When a high-water mark is set,
// Ready fires once the queue holds at least that many items so a writer can
// flush before its next tick.
type Queue[T any] struct {
	mu        sync.Mutex
	items     []T
	highWater int
	ready     chan struct{}
}

// New creates an empty queue. A highWater of zero or less disables Ready.
func New[T any](highWater int) *Queue[T] {
	return &Queue[T]{
		highWater: highWater,
		ready:     make(chan struct{}, 1),
	}
}

// Push appends items.
func (q *Queue[T]) Push(items ...T) {
	q.mu.Lock()
	q.items = append(q.items, items...)
	full := q.highWater > 0 && len(q.items) >= q.highWater
	q.mu.Unlock()

	if full {
		select {
		case q.ready <- struct{}{}:
		default:
		}
	}
}

// Requeue puts items back at the front, ahead of anything pushed since they
// were drained.
func (q *Queue[T]) Requeue(items []T) {
	if len(items) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(append(make([]T, 0, len(items)+len(q.items)), items...), q.items...)
}

// Drain removes and returns up to max items from the front. max <= 0 takes all.
func (q *Queue[T]) Drain(max int) []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	n := len(q.items)
	if max > 0 && max < n {
		n = max
	}
	out := make([]T, n)
	copy(out, q.items[:n])
	q.items = q.items[n:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return out
}

// Len returns the number of pending items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Ready signals that the high-water mark was reached.
func (q *Queue[T]) Ready() <-chan struct{} {
	return q.ready
}
