package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "searchmcp"

// Remote API and tool call metrics.
var (
	RemoteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_requests_total",
			Help:      "Total requests sent to remote platform APIs",
		},
		[]string{"service", "operation", "status"},
	)

	RemoteRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_request_duration_seconds",
			Help:      "Remote platform API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service", "operation"},
	)

	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Total MCP tool calls by outcome",
		},
		[]string{"tool", "status"},
	)

	ToolCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_call_duration_seconds",
			Help:      "MCP tool call duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"tool"},
	)
)

var registered bool

// Register registers all collectors with the default registry. Must be called once from main.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(RemoteRequestsTotal)
	prometheus.MustRegister(RemoteRequestDuration)
	prometheus.MustRegister(ToolCallsTotal)
	prometheus.MustRegister(ToolCallDuration)
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingTokensTotal)
	prometheus.MustRegister(EmbeddingErrorsTotal)
	prometheus.MustRegister(adminRequestDuration)
	prometheus.MustRegister(adminRequestsTotal)
	prometheus.MustRegister(adminInFlight)
	registered = true
}

// ObserveRemote records one remote API round trip.
func ObserveRemote(service, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RemoteRequestsTotal.WithLabelValues(service, operation, status).Inc()
	RemoteRequestDuration.WithLabelValues(service, operation).Observe(time.Since(start).Seconds())
}

// ObserveToolCall records one MCP tool call. status is "ok", "error" or "not_configured".
func ObserveToolCall(tool, status string, start time.Time) {
	ToolCallsTotal.WithLabelValues(tool, status).Inc()
	ToolCallDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
}
