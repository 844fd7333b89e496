package pool

import (
	"sync"

	"github.com/taskpool/taskpool/poolerrors"
)

// taskQueue is the Unbounded Task Queue from spec.md §3 (C2): an ordered
// FIFO of runnables with a closed flag, both guarded by a single monitor
// — a mutex paired with a condition variable, the same pairing
// other_examples/737327c5_botobag-artemis__concurrent-worker_pool_executor.go.go's
// workerPoolTaskQueue uses for its Push/Poll/Close. enqueue only ever
// blocks to acquire the mutex, never for lack of a consumer: the queue
// has no capacity limit, so it can never make a worker that is itself
// the only consumer block forever trying to hand off a task to itself.
// That is what spec.md §8's re-entrant-submission guarantee requires of
// any workerCount, including 1.
type taskQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	closed bool
	items  []runnable
}

// newTaskQueue creates an open, empty queue.
func newTaskQueue() *taskQueue {
	q := &taskQueue{}
	q.cond = sync.NewCond(&q.mu)

	return q
}

// enqueue appends r to the tail of the queue and wakes one waiter. It
// returns poolerrors.ErrRejected without enqueuing anything if the queue
// is closed.
func (q *taskQueue) enqueue(r runnable) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return poolerrors.ErrRejected
	}

	q.items = append(q.items, r)
	q.cond.Signal()

	return nil
}

// dequeueOrWait blocks until an item is available or the queue is closed
// and drained, returning ok==false in the latter case (spec.md's "no
// task" sentinel).
func (q *taskQueue) dequeueOrWait() (runnable, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}

	if len(q.items) == 0 {
		return nil, false
	}

	r := q.items[0]
	q.items = q.items[1:]

	return r, true
}

// close marks the queue closed and wakes every worker blocked in
// dequeueOrWait. Idempotent.
func (q *taskQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.cond.Broadcast()
}
