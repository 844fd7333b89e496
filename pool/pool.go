// Package pool implements a fixed-size worker pool (the Pool Controller,
// C4, of spec.md): a bounded set of goroutines draining a shared task
// queue, dispatching heterogeneous callables, and returning their
// outcomes to submitters through per-task Futures.
package pool

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/taskpool/taskpool/metrics"
	"github.com/taskpool/taskpool/poolerrors"
)

// Pool owns the fixed worker set and the task queue, and provides an
// idempotent, leak-free shutdown. The zero value is not usable; construct
// one with NewPool.
type Pool struct {
	queue        *taskQueue
	wg           sync.WaitGroup
	shutdownOnce sync.Once
	active       atomic.Int64
	logger       *slog.Logger
	metrics      *metrics.Collector
}

// poolConfig accumulates functional options before the Pool and its
// queue are constructed.
type poolConfig struct {
	logger  *slog.Logger
	metrics *metrics.Collector
}

// Option configures a Pool at construction time.
type Option func(*poolConfig)

// WithLogger sets the diagnostic sink a worker logs to when it contains
// an uncontained panic (spec.md §6's "diagnostic sink"). Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *poolConfig) { c.logger = logger }
}

// WithMetrics attaches a metrics.Collector that mirrors the pool's
// observational active-worker count, queue throughput, and task outcome
// counters to Prometheus. A nil Collector (the default) makes every
// recording call a no-op.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *poolConfig) { c.metrics = m }
}

// NewPool constructs and starts a pool with the given fixed number of
// workers. It returns poolerrors.ErrInvalidConfiguration if workers is
// not positive, per spec.md §4.4's construct(n) contract.
func NewPool(workers int, opts ...Option) (*Pool, error) {
	if workers < 1 {
		return nil, poolerrors.ErrInvalidConfiguration
	}

	cfg := &poolConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	p := &Pool{
		queue:   newTaskQueue(),
		logger:  cfg.logger,
		metrics: cfg.metrics,
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}

	return p, nil
}

// ActiveWorkers reports the number of workers currently executing a task.
// It is observational only, per spec.md §5 — nothing in this package
// makes a correctness decision based on its value.
func (p *Pool) ActiveWorkers() int64 {
	return p.active.Load()
}

// Shutdown closes the task queue — refusing further submissions — and
// blocks until every already-enqueued task has run to completion and
// every worker has exited (the drain-on-shutdown policy of spec.md
// §4.4). It is idempotent: calling it any number of times has the same
// observable effect as calling it once.
func (p *Pool) Shutdown() {
	p.shutdownOnce.Do(func() {
		p.queue.close()
		p.wg.Wait()
	})
}

// Close is an alias for Shutdown, for callers that defer a generic
// cleanup. It returns no error, so Pool does not implement io.Closer.
func (p *Pool) Close() {
	p.Shutdown()
}

// worker repeatedly drains the task queue until it observes the queue
// closed and empty, then returns, ending its goroutine (spec.md §4.3's
// Running -> Exited transition).
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		r, ok := p.queue.dequeueOrWait()
		if !ok {
			return
		}

		p.active.Add(1)
		p.reportActive()

		start := time.Now()
		p.invokeSafely(r)
		elapsed := time.Since(start)

		p.active.Add(-1)
		p.reportActive()
		p.reportOutcome(r, elapsed)
	}
}

// invokeSafely runs r.invoke, with an outer recover as defense in depth.
// r.invoke never panics by construction (envelope recovers internally),
// so this outer recover only fires if that invariant is ever violated,
// in which case a buggy task must still never take down a worker.
func (p *Pool) invokeSafely(r runnable) {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Error("uncontained panic escaped task envelope", "panic", rec)
		}
	}()

	r.invoke()
}

func (p *Pool) reportActive() {
	if p.metrics != nil {
		p.metrics.SetActiveWorkers(p.active.Load())
	}
}

func (p *Pool) reportOutcome(r runnable, elapsed time.Duration) {
	if p.metrics == nil {
		return
	}

	if r.failed() {
		p.metrics.IncFailed()
	} else {
		p.metrics.IncCompleted()
	}
	p.metrics.ObserveLatency(elapsed.Seconds())
}
