package pool

import (
	"context"
	"fmt"
	"sync"

	"github.com/taskpool/taskpool/poolerrors"
)

// MultiResultTask is a task that may publish zero or more values before
// completing, generalizing the single-result Task the same way the
// teacher library generalizes types.Task into types.MultiResultTask: the
// task is handed a Stream instead of returning a single value.
type MultiResultTask[T any] interface {
	Execute(ctx context.Context, stream *Stream[T]) error
}

// Stream is the publishing side handed to a MultiResultTask, and the
// consuming side returned to the submitter — the streaming counterpart
// of Future. Values are available on Values() as they are emitted; Wait
// blocks for the task's completion error, which is only meaningful after
// Values() has been drained (ranged to closure).
type Stream[T any] struct {
	values    chan T
	closeOnce sync.Once
	done      *Future[struct{}]
}

// newStream creates a Stream with the given values buffer.
func newStream[T any](buffer uint) *Stream[T] {
	return &Stream[T]{
		values: make(chan T, buffer),
		done:   newFuture[struct{}](),
	}
}

// Emit publishes value to the consumer, blocking if the buffer is full.
// It returns ctx.Err() if ctx is done before the value is accepted.
func (s *Stream[T]) Emit(ctx context.Context, value T) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case s.values <- value:
		return nil
	}
}

// Values returns the channel of emitted values. It is closed once the
// task's Execute method returns.
func (s *Stream[T]) Values() <-chan T {
	return s.values
}

// Wait blocks for the task's completion, returning any error it
// produced. Callers should drain Values() (or abandon the Stream
// entirely, e.g. via context cancellation) before calling Wait, or the
// task's worker may block trying to Emit.
func (s *Stream[T]) Wait(ctx context.Context) error {
	_, err := s.done.Wait(ctx)

	return err
}

func (s *Stream[T]) close() {
	s.closeOnce.Do(func() { close(s.values) })
}

// streamEnvelope adapts a MultiResultTask into a runnable.
type streamEnvelope[T any] struct {
	ctx    context.Context
	task   MultiResultTask[T]
	stream *Stream[T]
	err    error
}

// invoke implements runnable.
func (e *streamEnvelope[T]) invoke() {
	defer e.stream.close()

	var callErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				callErr = &poolerrors.TaskFailed{Cause: fmt.Errorf("task panicked: %v", r)}
			}
		}()

		if err := e.task.Execute(e.ctx, e.stream); err != nil {
			callErr = &poolerrors.TaskFailed{Cause: err}
		}
	}()

	e.err = callErr
	e.stream.done.fulfil(struct{}{}, callErr)
}

// failed implements runnable.
func (e *streamEnvelope[T]) failed() bool {
	return e.err != nil
}

// SubmitStream wraps task as a runnable, enqueues it on p, and returns a
// Stream the caller can range over for results and Wait on for the
// task's terminal error. buffer sizes the values channel; a buffer of 0
// blocks the worker's Emit calls until the caller reads each value.
func SubmitStream[T any](
	ctx context.Context, p *Pool, task MultiResultTask[T], buffer uint,
) (*Stream[T], error) {
	if p.metrics != nil {
		p.metrics.IncSubmitted()
	}

	stream := newStream[T](buffer)
	env := &streamEnvelope[T]{ctx: ctx, task: task, stream: stream}

	if err := p.queue.enqueue(env); err != nil {
		if p.metrics != nil {
			p.metrics.IncRejected()
		}

		return nil, err
	}

	return stream, nil
}
