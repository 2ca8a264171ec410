package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPlannerMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPlannerMetrics(reg)

	m.RecordPlanned("CONTRACT", true)
	m.RecordPlanned("CONTRACT", true)
	m.RecordPlanned("ORGANISATION", false)
	m.RecordError("ZONE_NOT_FOUND")
	m.RecordError("")
	m.ObserveBatch(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.plannedDates.WithLabelValues("CONTRACT", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.plannedDates.WithLabelValues("ORGANISATION", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.planningErrors.WithLabelValues("ZONE_NOT_FOUND")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.planningErrors.WithLabelValues("unknown")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.batchSize))
}

func TestPlannerMetricsReuseRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewPlannerMetrics(reg)
	second := NewPlannerMetrics(reg)

	first.RecordError("INVALID_STATE")
	second.RecordError("INVALID_STATE")

	assert.Equal(t, 2.0, testutil.ToFloat64(first.planningErrors.WithLabelValues("INVALID_STATE")))
}

func TestNilPlannerMetricsIsSafe(t *testing.T) {
	var m *PlannerMetrics
	assert.NotPanics(t, func() {
		m.RecordPlanned("CLIENT", false)
		m.RecordError("INTERNAL")
		m.ObserveBatch(1)
	})
}
