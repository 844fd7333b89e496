package pool

import "context"

// Submit is the Submission Adapter (C5) of spec.md §4.5: it binds task
// (the caller's arguments are expected to already be bound via closure
// capture — the Go realization of spec.md's "eagerly bind args to
// callable") into a Task Envelope, enqueues it, and returns a Future.
//
// If the pool's shutdown has been initiated, Submit returns
// poolerrors.ErrRejected and no Future is returned — nothing is
// enqueued, matching spec.md's "for a failed submit, no Result Handle is
// returned".
func Submit[T any](ctx context.Context, p *Pool, task func(context.Context) (T, error)) (*Future[T], error) {
	if p.metrics != nil {
		p.metrics.IncSubmitted()
	}

	future := newFuture[T]()
	env := &envelope[T]{ctx: ctx, run: task, future: future}

	if err := p.queue.enqueue(env); err != nil {
		if p.metrics != nil {
			p.metrics.IncRejected()
		}

		return nil, err
	}

	return future, nil
}

// Go submits task with context.Background(), for callers that do not
// need to bound or cancel the wait on submission itself.
func Go[T any](p *Pool, task func(context.Context) (T, error)) (*Future[T], error) {
	return Submit(context.Background(), p, task)
}

// SubmitVoid submits a task with no return value, storing spec.md's
// "completed" marker (struct{}{}) as the Future's value on success.
func SubmitVoid(ctx context.Context, p *Pool, task func(context.Context) error) (*Future[struct{}], error) {
	return Submit(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, task(ctx)
	})
}
