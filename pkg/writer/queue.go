package writer

import "sync"

// boundedQueue is a mutex-guarded FIFO with a hard capacity bound.
// Producers offer, the worker drains; insertion order is send order.
type boundedQueue[R any] struct {
	mu       sync.Mutex
	records  []R
	capacity int
}

func newBoundedQueue[R any](capacity int) *boundedQueue[R] {
	return &boundedQueue[R]{capacity: capacity}
}

// Offer appends the record. Returns false when the queue is at capacity;
// the record is dropped, never the oldest entries.
func (q *boundedQueue[R]) Offer(record R) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.records) >= q.capacity {
		return false
	}
	q.records = append(q.records, record)
	return true
}

// Drain atomically removes and returns everything queued, in insertion
// order. Records offered after Drain takes its snapshot wait for the
// next cycle.
func (q *boundedQueue[R]) Drain() []R {
	q.mu.Lock()
	defer q.mu.Unlock()
	records := q.records
	q.records = nil
	return records
}

// Len returns the number of queued records.
func (q *boundedQueue[R]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.records)
}
