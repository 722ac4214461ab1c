// Package metrics holds the exporter's own instrumentation. The collectors
// are registered into the exporter registry, next to the Hyperliquid gauges.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hypurr_exporter"

// Source fetch outcomes.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// ── HTTP request metrics (RED method) ──────────────────────────────────

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status_code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	HTTPRequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being processed.",
	})
)

// ── Source fetch metrics ───────────────────────────────────────────────

var (
	SourceFetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "source",
		Name:      "fetch_total",
		Help:      "Total number of source fetches per outcome.",
	}, []string{"source", "status"})

	SourceFetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "source",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of a source fetch in seconds.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"source"})
)

// InitSource creates every label combination of a source up front so the
// exposition does not change shape after its first failure.
func InitSource(name string) {
	for _, status := range []string{StatusOK, StatusError, StatusSkipped} {
		SourceFetchTotal.WithLabelValues(name, status)
	}
	SourceFetchDuration.WithLabelValues(name)
}

// Collectors returns the exporter's own collectors.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		HTTPRequestsTotal,
		HTTPRequestDuration,
		HTTPRequestsInFlight,
		SourceFetchTotal,
		SourceFetchDuration,
	}
}
