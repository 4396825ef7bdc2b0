package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the pipeline's Prometheus collectors on a private registry.
type Metrics struct {
	registry         *prometheus.Registry
	ticketsProcessed *prometheus.CounterVec
	pipelineFailures *prometheus.CounterVec
	oracleDuration   prometheus.Histogram
	cacheLookups     *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
}

// NewMetrics registers every collector on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticketsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "triage",
			Name:      "tickets_processed_total",
			Help:      "Tickets that reached the persisted state, by category and priority.",
		}, []string{"category", "priority"}),
		pipelineFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "triage",
			Name:      "pipeline_failures_total",
			Help:      "Tickets that failed, by the stage reached and error code.",
		}, []string{"stage", "code"}),
		oracleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "triage",
			Name:      "oracle_duration_seconds",
			Help:      "Latency of classification calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "triage",
			Name:      "cache_lookups_total",
			Help:      "Classification cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "triage",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"path", "method", "status"}),
	}
	m.registry.MustRegister(m.ticketsProcessed, m.pipelineFailures, m.oracleDuration, m.cacheLookups, m.httpRequests)
	return m
}

// RecordProcessed counts a persisted ticket.
func (m *Metrics) RecordProcessed(category, priority string) {
	if m == nil {
		return
	}
	m.ticketsProcessed.WithLabelValues(category, priority).Inc()
}

// RecordFailure counts a failed ticket.
func (m *Metrics) RecordFailure(stage, code string) {
	if m == nil {
		return
	}
	if code == "" {
		code = "UNKNOWN"
	}
	m.pipelineFailures.WithLabelValues(stage, code).Inc()
}

// ObserveOracle records one classification call's latency.
func (m *Metrics) ObserveOracle(d time.Duration) {
	if m == nil {
		return
	}
	m.oracleDuration.Observe(d.Seconds())
}

// RecordCacheLookup counts a cache lookup outcome.
func (m *Metrics) RecordCacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// RecordRequest counts an HTTP request.
func (m *Metrics) RecordRequest(path, method, status string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(path, method, status).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
