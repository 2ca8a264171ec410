package metrics

import (
	"strconv"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PlannerMetrics captures debit date planning outcomes.
type PlannerMetrics struct {
	plannedDates   *prometheus.CounterVec
	planningErrors *prometheus.CounterVec
	batchSize      prometheus.Histogram
}

var (
	plannerMetricsOnce sync.Once
	plannerMetrics     *PlannerMetrics
)

// Planner returns the process-wide planner metrics registered on the default registerer.
func Planner() *PlannerMetrics {
	plannerMetricsOnce.Do(func() {
		plannerMetrics = NewPlannerMetrics(prometheus.DefaultRegisterer)
	})
	return plannerMetrics
}

// ProvidePlanner exposes the singleton to fx.
func ProvidePlanner() *PlannerMetrics {
	return Planner()
}

// NewPlannerMetrics registers planner collectors on registerer. Already-registered
// collectors are reused.
func NewPlannerMetrics(registerer prometheus.Registerer) *PlannerMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &PlannerMetrics{
		plannedDates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "debitplan",
			Name:      "planned_dates_total",
			Help:      "Planned debit dates computed, by applied configuration level and whether the date was shifted.",
		}, []string{"level", "shifted"}),
		planningErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "debitplan",
			Name:      "planning_errors_total",
			Help:      "Planning calls that failed, by error code.",
		}, []string{"code"}),
		batchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "debitplan",
			Name:      "batch_size",
			Help:      "Number of items per batch planning call.",
			Buckets:   []float64{1, 10, 50, 100, 250, 500, 1000},
		}),
	}

	m.plannedDates = register(registerer, m.plannedDates)
	m.planningErrors = register(registerer, m.planningErrors)
	m.batchSize = register(registerer, m.batchSize)
	return m
}

func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) C {
	if err := registerer.Register(collector); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return collector
}

// RecordPlanned counts a successful planning call.
func (m *PlannerMetrics) RecordPlanned(level string, shifted bool) {
	if m == nil {
		return
	}
	m.plannedDates.WithLabelValues(normalizeLabel(level), strconv.FormatBool(shifted)).Inc()
}

// RecordError counts a failed planning call.
func (m *PlannerMetrics) RecordError(code string) {
	if m == nil {
		return
	}
	m.planningErrors.WithLabelValues(normalizeLabel(code)).Inc()
}

// ObserveBatch records the size of a batch call.
func (m *PlannerMetrics) ObserveBatch(size int) {
	if m == nil {
		return
	}
	m.batchSize.Observe(float64(size))
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return value
}
