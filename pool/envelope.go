package pool

import (
	"context"
	"fmt"

	"github.com/taskpool/taskpool/poolerrors"
)

// runnable is the type-erased, nullary invocable the Task Queue actually
// stores (spec.md's Task Envelope, C1). Every concrete task shape in this
// package — single-result, void, or streaming — is wrapped down to a
// runnable before it is enqueued, the same way the teacher library erases
// Task/MultiResultTask down to ValuelessTask.
type runnable interface {
	// invoke runs the task exactly once. It never panics: any panic
	// raised by the wrapped callable is recovered and turned into a
	// poolerrors.TaskFailed delivered through the task's Future.
	invoke()

	// failed reports whether the most recent invoke produced an error
	// outcome. It exists purely for metrics; it is only meaningful after
	// invoke has returned.
	failed() bool
}

// envelope adapts a single-result task (a bound func(context.Context)
// (T, error), i.e. spec.md's "nullary invocable" once the caller's
// arguments have been bound via closure capture) into a runnable,
// fulfilling its Future exactly once.
type envelope[T any] struct {
	ctx    context.Context
	run    func(context.Context) (T, error)
	future *Future[T]
	err    error
}

// invoke implements runnable.
func (e *envelope[T]) invoke() {
	var value T
	var callErr error

	func() {
		defer func() {
			if r := recover(); r != nil {
				callErr = &poolerrors.TaskFailed{Cause: fmt.Errorf("task panicked: %v", r)}
			}
		}()

		v, err := e.run(e.ctx)
		value = v
		if err != nil {
			callErr = &poolerrors.TaskFailed{Cause: err}
		}
	}()

	e.err = callErr
	e.future.fulfil(value, callErr)
}

// failed implements runnable.
func (e *envelope[T]) failed() bool {
	return e.err != nil
}
