package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordsActiveWorkers(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg, "taskpool_test")

	c.SetActiveWorkers(3)

	metricFamilies, err := reg.Gather()
	require.NoError(t, err)

	value, ok := gaugeValue(metricFamilies, "taskpool_test_active_workers")
	require.True(t, ok, "active_workers metric not found")
	assert.InDelta(t, 3, value, 0.0001)
}

func TestCollector_CountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg, "taskpool_test")

	c.IncSubmitted()
	c.IncSubmitted()
	c.IncCompleted()
	c.IncFailed()
	c.IncRejected()
	c.ObserveLatency(0.05)

	metricFamilies, err := reg.Gather()
	require.NoError(t, err)

	submitted, ok := counterValue(metricFamilies, "taskpool_test_tasks_submitted_total")
	require.True(t, ok)
	assert.Equal(t, float64(2), submitted)

	completed, ok := counterValue(metricFamilies, "taskpool_test_tasks_completed_total")
	require.True(t, ok)
	assert.Equal(t, float64(1), completed)
}

func gaugeValue(mfs []*dto.MetricFamily, name string) (float64, bool) {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetGauge().GetValue(), true
		}
	}

	return 0, false
}

func counterValue(mfs []*dto.MetricFamily, name string) (float64, bool) {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetCounter().GetValue(), true
		}
	}

	return 0, false
}
