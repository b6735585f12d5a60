// Package metrics provides Prometheus-backed operational metrics for
// collection and scoring runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/brandscope/brandscope/internal/ports"
)

// PrometheusCollector implements the MetricsCollector interface using
// Prometheus, tracking request latency, request counts, and token
// consumption per provider and model.
type PrometheusCollector struct {
	requestLatency *prometheus.HistogramVec
	requestCounter *prometheus.CounterVec
	tokenCounter   *prometheus.CounterVec
}

var _ ports.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector creates a collector and registers its metrics
// in the global Prometheus registry. Create at most one per process.
func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{
		requestLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "brandscope_request_duration_seconds",
				Help:    "Latency of LLM provider requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "provider", "model", "status"},
		),
		requestCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brandscope_requests_total",
				Help: "Total LLM provider requests by outcome.",
			},
			[]string{"provider", "model", "status"},
		),
		tokenCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brandscope_tokens_total",
				Help: "Total tokens consumed across LLM interactions.",
			},
			[]string{"provider", "model", "token_type"},
		),
	}
}

// RecordLatency records operation latency in the request histogram.
func (pc *PrometheusCollector) RecordLatency(operation string, duration time.Duration, labels map[string]string) {
	pc.requestLatency.WithLabelValues(
		operation,
		labelOr(labels, "provider"),
		labelOr(labels, "model"),
		labelOr(labels, "status"),
	).Observe(duration.Seconds())
}

// RecordCounter increments the counter matching the metric name.
func (pc *PrometheusCollector) RecordCounter(metric string, value float64, labels map[string]string) {
	switch metric {
	case "llm_tokens_total":
		pc.tokenCounter.WithLabelValues(
			labelOr(labels, "provider"),
			labelOr(labels, "model"),
			labelOr(labels, "token_type"),
		).Add(value)
	default:
		pc.requestCounter.WithLabelValues(
			labelOr(labels, "provider"),
			labelOr(labels, "model"),
			labelOr(labels, "status"),
		).Add(value)
	}
}

func labelOr(labels map[string]string, key string) string {
	if value, ok := labels[key]; ok {
		return value
	}
	return "unknown"
}
