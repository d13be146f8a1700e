package streaming

import "sync"

// TileRef identifies a tile to fetch by grid coordinate.
type TileRef struct {
	X, Y int32
}

// PrefetchQueue is a bounded ring of tile indices awaiting a worker fetch,
// with an overflow vector for requests that arrive once the ring is full
// (§4.2 Prefetch queue contract).
type PrefetchQueue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	ring     []TileRef
	head     int // next slot to pop
	count    int
	overflow []TileRef
}

// NewPrefetchQueue creates a queue with the given ring capacity
// (= max-prefetched, per §3 Lifecycles / §8 scenario 4).
func NewPrefetchQueue(capacity int) *PrefetchQueue {
	q := &PrefetchQueue{ring: make([]TileRef, capacity)}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Capacity returns the ring's fixed capacity.
func (q *PrefetchQueue) Capacity() int { return len(q.ring) }

// Push enqueues ref. If the ring is full, ref is appended to the overflow
// vector instead and Push returns false (§4.2: "Overflow: if the queue is
// full, selection pushes the tile onto an overflow vector consumed on
// subsequent frames").
func (q *PrefetchQueue) Push(ref TileRef) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == len(q.ring) {
		q.overflow = append(q.overflow, ref)
		return false
	}
	tail := (q.head + q.count) % len(q.ring)
	q.ring[tail] = ref
	q.count++
	q.cond.Signal()
	return true
}

// PromoteOverflow moves one overflow entry into the ring if there is room,
// returning the promoted ref and true, or the zero value and false if
// either the overflow list is empty or the ring is full.
func (q *PrefetchQueue) PromoteOverflow() (TileRef, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.overflow) == 0 || q.count == len(q.ring) {
		return TileRef{}, false
	}
	ref := q.overflow[0]
	q.overflow = q.overflow[1:]
	tail := (q.head + q.count) % len(q.ring)
	q.ring[tail] = ref
	q.count++
	q.cond.Signal()
	return ref, true
}

// Pop blocks on the condition variable until at least one entry is queued
// or done reports true, then atomically claims the head entry (§4.2: "A
// background worker blocks on a condition variable; when awakened, it
// atomically claims the top index").
func (q *PrefetchQueue) Pop(done func() bool) (TileRef, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == 0 {
		if done != nil && done() {
			return TileRef{}, false
		}
		q.cond.Wait()
	}
	ref := q.ring[q.head]
	q.head = (q.head + 1) % len(q.ring)
	q.count--
	return ref, true
}

// Len returns the number of entries currently queued in the ring (not
// counting overflow).
func (q *PrefetchQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// OverflowLen returns the number of entries waiting in the overflow vector.
func (q *PrefetchQueue) OverflowLen() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.overflow)
}

// Wake wakes every goroutine blocked in Pop without enqueueing anything,
// used by shutdown to unblock the worker (§5 Cancellation: "broadcasts the
// condvar").
func (q *PrefetchQueue) Wake() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.cond.Broadcast()
}
