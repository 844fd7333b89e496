// Package metrics exposes Prometheus instrumentation for a pool.Pool. The
// metrics it collects are the observational active-worker count spec.md
// §5 already names plus task submission and outcome counters and a latency histogram for the "logical clock sink
// for optional timing diagnostics" mentioned in spec.md §6. Attaching a
// Collector is optional: a nil *Collector anywhere in pool is a no-op,
// never a panic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the Prometheus instruments for one pool.
type Collector struct {
	activeWorkers prometheus.Gauge
	submitted     prometheus.Counter
	rejected      prometheus.Counter
	completed     prometheus.Counter
	failed        prometheus.Counter
	latency       prometheus.Histogram
}

// NewCollector creates a Collector and registers its instruments with
// reg. Passing prometheus.NewRegistry() keeps the metrics isolated
// (recommended for tests and for running multiple pools); passing
// prometheus.DefaultRegisterer matches the single-process CLI's use.
func NewCollector(reg prometheus.Registerer, namespace string) *Collector {
	c := &Collector{
		activeWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_workers",
			Help:      "Number of workers currently executing a task.",
		}),
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_submitted_total",
			Help:      "Total number of tasks passed to Submit, including rejected submissions.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_rejected_total",
			Help:      "Total number of submissions refused because the pool was shutting down.",
		}),
		completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_completed_total",
			Help:      "Total number of tasks that ran to completion without error.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_failed_total",
			Help:      "Total number of tasks whose callable returned an error or panicked.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_duration_seconds",
			Help:      "Task execution latency, from dequeue to completion.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(c.activeWorkers, c.submitted, c.rejected, c.completed, c.failed, c.latency)

	return c
}

// SetActiveWorkers sets the active-worker gauge.
func (c *Collector) SetActiveWorkers(n int64) {
	c.activeWorkers.Set(float64(n))
}

// IncSubmitted increments the submitted-tasks counter.
func (c *Collector) IncSubmitted() {
	c.submitted.Inc()
}

// IncRejected increments the rejected-submissions counter.
func (c *Collector) IncRejected() {
	c.rejected.Inc()
}

// IncCompleted increments the successfully-completed-tasks counter.
func (c *Collector) IncCompleted() {
	c.completed.Inc()
}

// IncFailed increments the failed-tasks counter.
func (c *Collector) IncFailed() {
	c.failed.Inc()
}

// ObserveLatency records a task's execution duration, in seconds.
func (c *Collector) ObserveLatency(seconds float64) {
	c.latency.Observe(seconds)
}
