package pool

import (
	"context"
	"sync"

	"github.com/taskpool/taskpool/poolerrors"
)

// outcome is the single value written to a Future's channel, carrying
// either a successful value or the error (wrapped TaskFailed) that
// terminated the task.
type outcome[T any] struct {
	value T
	err   error
}

// Future is the Result Handle / Result Channel pair from spec.md §3,
// collapsed into a single move-by-convention type: a one-shot,
// single-producer/single-consumer rendezvous. A Future is fulfilled
// exactly once, either by the worker that executed its task or, for a
// task dropped before execution, by cancel.
type Future[T any] struct {
	ch   chan outcome[T]
	once sync.Once
}

// newFuture creates an unfulfilled Future with a buffer of one, so the
// producer (the worker) never blocks handing off the outcome.
func newFuture[T any]() *Future[T] {
	return &Future[T]{ch: make(chan outcome[T], 1)}
}

// fulfil completes the Future with a value and/or error. It is safe to
// call at most meaningfully once; subsequent calls are no-ops, enforcing
// spec.md's "exactly one fulfilment" invariant.
func (f *Future[T]) fulfil(value T, err error) {
	f.once.Do(func() {
		f.ch <- outcome[T]{value: value, err: err}
		close(f.ch)
	})
}

// cancel fulfils the Future with poolerrors.ErrTaskCancelled without ever
// having run the task, for the drop-on-shutdown policy described in
// spec.md §7. The default, wired policy is drain-on-shutdown, so nothing
// in this package calls cancel today; it is exercised directly by its own
// test to document the behaviour spec.md reserves for it.
func (f *Future[T]) cancel() {
	f.once.Do(func() {
		close(f.ch)
	})
}

// Wait blocks until the task's outcome is available or ctx is done,
// whichever comes first. Canceling ctx only stops this particular wait;
// it never reaches into the running task (spec.md §5: no cooperative
// cancellation is delivered into an executing task).
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	var zero T
	select {
	case o, ok := <-f.ch:
		if !ok {
			return zero, poolerrors.ErrTaskCancelled
		}

		return o.value, o.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Get waits indefinitely for the outcome, the direct realization of
// spec.md's ResultHandle::await() with no cancellation surface.
func (f *Future[T]) Get() (T, error) {
	return f.Wait(context.Background())
}
