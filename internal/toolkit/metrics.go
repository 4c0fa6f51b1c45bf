package toolkit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsSink is notified on every tool call (spec §4.1). Implementations
// must be concurrency-safe and fire-and-forget (spec §5).
type MetricsSink interface {
	RecordToolCall(tool string, elapsed time.Duration, success bool)
}

// NoopMetricsSink discards every call; used when no sink is configured.
type NoopMetricsSink struct{}

// RecordToolCall implements MetricsSink.
func (NoopMetricsSink) RecordToolCall(string, time.Duration, bool) {}

// PrometheusMetrics is the production metrics sink, grounded on the
// teacher's internal/observability/metrics.go CounterVec/HistogramVec
// registration style via promauto.
type PrometheusMetrics struct {
	ToolCallCounter  *prometheus.CounterVec
	ToolCallDuration *prometheus.HistogramVec
}

// NewPrometheusMetrics registers and returns a PrometheusMetrics sink on
// the given registerer (pass prometheus.DefaultRegisterer in production,
// a fresh prometheus.NewRegistry() in tests to avoid collisions).
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		ToolCallCounter: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nexuscore",
			Subsystem: "tools",
			Name:      "calls_total",
			Help:      "Tool invocations by tool name and outcome.",
		}, []string{"tool", "success"}),
		ToolCallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nexuscore",
			Subsystem: "tools",
			Name:      "call_duration_seconds",
			Help:      "Tool invocation latency in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		}, []string{"tool"}),
	}
}

// RecordToolCall implements MetricsSink.
func (m *PrometheusMetrics) RecordToolCall(tool string, elapsed time.Duration, success bool) {
	label := "true"
	if !success {
		label = "false"
	}
	m.ToolCallCounter.WithLabelValues(tool, label).Inc()
	m.ToolCallDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}
