package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector собирает метрики сервиса приоритизации
type Collector struct {
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	ScenarioRunsTotal     *prometheus.CounterVec
	ScenarioDuration      prometheus.Histogram
	ScenarioResolvedUnits prometheus.Histogram

	ReferenceCacheTotal *prometheus.CounterVec
}

// NewCollector регистрирует метрики в переданном registerer
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		APIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests by route, method, and status",
			},
			[]string{"route", "method", "status"},
		),

		APIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"route"},
		),

		ScenarioRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scenario_runs_total",
				Help:      "Scenario evaluations by AOI mode and outcome",
			},
			[]string{"mode", "status"},
		),

		ScenarioDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "scenario_duration_seconds",
				Help:      "Scenario evaluation time including dataset loading",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),

		ScenarioResolvedUnits: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "scenario_resolved_units",
				Help:      "Number of spatial units in the resolved area of interest",
				Buckets:   []float64{0, 1, 10, 50, 100, 250, 500, 1000, 2000},
			},
		),

		ReferenceCacheTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reference_cache_total",
				Help:      "Reference name list lookups by list and cache result",
			},
			[]string{"list", "result"},
		),
	}
}

// Timer provides timing functionality for operations
type Timer struct {
	start    time.Time
	observer prometheus.Observer
}

// NewTimer creates a new timer
func (c *Collector) NewTimer(histogram prometheus.Observer) *Timer {
	return &Timer{
		start:    time.Now(),
		observer: histogram,
	}
}

// ObserveDuration records the elapsed time since timer creation
func (t *Timer) ObserveDuration() time.Duration {
	duration := time.Since(t.start)
	if t.observer != nil {
		t.observer.Observe(duration.Seconds())
	}
	return duration
}

// RecordAPIRequest увеличивает счётчик запросов и пишет длительность
func (c *Collector) RecordAPIRequest(route, method, status string, duration time.Duration) {
	if c == nil {
		return
	}
	c.APIRequestsTotal.WithLabelValues(route, method, status).Inc()
	c.APIRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordScenario фиксирует результат прогона сценария
func (c *Collector) RecordScenario(mode, status string, resolvedUnits int, duration time.Duration) {
	if c == nil {
		return
	}
	c.ScenarioRunsTotal.WithLabelValues(mode, status).Inc()
	c.ScenarioDuration.Observe(duration.Seconds())
	if status == "ok" {
		c.ScenarioResolvedUnits.Observe(float64(resolvedUnits))
	}
}

// RecordReferenceLookup фиксирует попадание/промах кеша справочников
func (c *Collector) RecordReferenceLookup(list string, hit bool) {
	if c == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.ReferenceCacheTotal.WithLabelValues(list, result).Inc()
}
