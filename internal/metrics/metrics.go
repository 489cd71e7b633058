// Package metrics exposes Prometheus instrumentation for the generation
// service, modeled on the metrics registry pattern used elsewhere in the
// retrieved corpus: one struct of pre-registered vectors, built once at
// startup and threaded through the components that record observations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects the instrumentation surfaced at the /metrics endpoint.
type Metrics struct {
	// GenerationDuration measures Generate() wall-clock time in seconds.
	// Labels: outcome (ok|infeasible|shortfall|cancelled|error)
	GenerationDuration *prometheus.HistogramVec

	// GenerationRequests counts calls to Generate() by outcome.
	GenerationRequests *prometheus.CounterVec

	// FeasibilityVerdicts counts Feasibility() calls by recommendation tier.
	// Labels: recommendation (SAFE|CAUTION|RISKY|INFEASIBLE_TOO_MANY_SETS|INFEASIBLE_INSUFFICIENT_ICONS)
	FeasibilityVerdicts *prometheus.CounterVec

	// SetsGenerated counts individual output sets produced across all
	// requests, for throughput dashboards independent of batch size.
	SetsGenerated prometheus.Counter

	// ShortfallSets counts sets that failed to reach the requested size
	// after exhausting their overlap-tolerant depth.
	ShortfallSets prometheus.Counter

	// StoreOperationDuration measures store.SetStore call latency.
	// Labels: operation (save|sets|set|delete), status (ok|error)
	StoreOperationDuration *prometheus.HistogramVec

	// ActiveGenerations tracks in-flight Generate() calls.
	ActiveGenerations prometheus.Gauge

	// HTTPRequestDuration measures HTTP handler latency.
	// Labels: method, route, status_code
	HTTPRequestDuration *prometheus.HistogramVec
}

// New builds and registers the metrics with reg. Passing
// prometheus.DefaultRegisterer matches production wiring; tests should pass
// a fresh prometheus.NewRegistry() to avoid collisions between test runs.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GenerationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hpss_generation_duration_seconds",
				Help:    "Duration of Generate() calls in seconds, by outcome",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
			[]string{"outcome"},
		),
		GenerationRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hpss_generation_requests_total",
				Help: "Total number of Generate() calls by outcome",
			},
			[]string{"outcome"},
		),
		FeasibilityVerdicts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hpss_feasibility_verdicts_total",
				Help: "Total number of Feasibility() calls by recommendation tier",
			},
			[]string{"recommendation"},
		),
		SetsGenerated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hpss_sets_generated_total",
				Help: "Total number of output sets produced across all requests",
			},
		),
		ShortfallSets: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hpss_shortfall_sets_total",
				Help: "Total number of sets that failed to reach the requested size",
			},
		),
		StoreOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hpss_store_operation_duration_seconds",
				Help:    "Duration of SetStore operations in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation", "status"},
		),
		ActiveGenerations: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "hpss_active_generations",
				Help: "Number of Generate() calls currently in flight",
			},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hpss_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"method", "route", "status_code"},
		),
	}
}

// RecordHTTPRequest records the latency of one HTTP request.
func (m *Metrics) RecordHTTPRequest(method, route, statusCode string, durationSeconds float64) {
	m.HTTPRequestDuration.WithLabelValues(method, route, statusCode).Observe(durationSeconds)
}

// RecordGeneration records the outcome and duration of one Generate() call.
func (m *Metrics) RecordGeneration(outcome string, durationSeconds float64, setsProduced int) {
	m.GenerationRequests.WithLabelValues(outcome).Inc()
	m.GenerationDuration.WithLabelValues(outcome).Observe(durationSeconds)
	if setsProduced > 0 {
		m.SetsGenerated.Add(float64(setsProduced))
	}
}

// RecordFeasibility records a Feasibility() verdict by recommendation tier.
func (m *Metrics) RecordFeasibility(recommendation string) {
	m.FeasibilityVerdicts.WithLabelValues(recommendation).Inc()
}

// RecordShortfall increments the shortfall-sets counter.
func (m *Metrics) RecordShortfall() {
	m.ShortfallSets.Inc()
}

// RecordStoreOperation records the latency of one SetStore call.
func (m *Metrics) RecordStoreOperation(operation, status string, durationSeconds float64) {
	m.StoreOperationDuration.WithLabelValues(operation, status).Observe(durationSeconds)
}
