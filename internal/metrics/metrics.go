// Package metrics exposes the Prometheus collectors used by icnview.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector on a private Prometheus registry
type Registry struct {
	registry *prometheus.Registry

	// Aggregation pipeline
	StageOutcomes  *prometheus.CounterVec
	FetchDuration  *prometheus.HistogramVec
	Aggregations   *prometheus.CounterVec
	GraphNodes     prometheus.Gauge
	GraphEdges     prometheus.Gauge
	SkippedRecords *prometheus.CounterVec

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// SSE
	SSEClients prometheus.Gauge
}

// NewRegistry creates a registry with all collectors registered
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initPipelineMetrics()
	r.initHTTPMetrics()
	return r
}

func (r *Registry) initPipelineMetrics() {
	r.StageOutcomes = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "icnview_stage_outcomes_total",
			Help: "Aggregation stage outcomes",
		},
		[]string{"stage", "outcome"},
	)

	r.FetchDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "icnview_fetch_duration_seconds",
			Help:    "Controller fetch latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	r.Aggregations = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "icnview_aggregations_total",
			Help: "Aggregation passes by result",
		},
		[]string{"result"},
	)

	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "icnview_graph_nodes",
			Help: "Nodes in the last aggregated graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "icnview_graph_edges",
			Help: "Edges in the last aggregated graph",
		},
	)

	r.SkippedRecords = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "icnview_skipped_records_total",
			Help: "Controller records dropped while building the graph",
		},
		[]string{"reason"},
	)
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "icnview_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "icnview_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	r.SSEClients = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "icnview_sse_clients",
			Help: "Connected Server-Sent Events clients",
		},
	)
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// RecordStage records the outcome of one pipeline stage
func (r *Registry) RecordStage(stage, outcome string) {
	r.StageOutcomes.WithLabelValues(stage, outcome).Inc()
}

// ObserveFetch records how long a controller fetch took
func (r *Registry) ObserveFetch(stage string, duration time.Duration) {
	r.FetchDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordAggregation records a finished aggregation pass and the size of its
// graph. Failed passes leave the gauges untouched.
func (r *Registry) RecordAggregation(result string, nodes, edges int) {
	r.Aggregations.WithLabelValues(result).Inc()
	if result == "ok" {
		r.GraphNodes.Set(float64(nodes))
		r.GraphEdges.Set(float64(edges))
	}
}

// RecordSkipped adds n dropped records for reason
func (r *Registry) RecordSkipped(reason string, n int) {
	if n <= 0 {
		return
	}
	r.SkippedRecords.WithLabelValues(reason).Add(float64(n))
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
