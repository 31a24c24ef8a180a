package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Proxy metrics
var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsapp",
			Subsystem: "proxy",
			Name:      "requests_total",
			Help:      "Total number of proxied search requests",
		},
		[]string{"status"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "newsapp",
			Subsystem: "proxy",
			Name:      "upstream_duration_seconds",
			Help:      "Upstream search call duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"outcome"},
	)

	UpstreamStatusTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsapp",
			Subsystem: "proxy",
			Name:      "upstream_status_total",
			Help:      "Upstream HTTP status codes seen by the proxy",
		},
		[]string{"code"},
	)
)

// RecordRequest records one proxied request and the status returned to the caller.
func RecordRequest(status string) {
	RequestsTotal.WithLabelValues(status).Inc()
}

// RecordUpstream records an upstream call. outcome is "ok" or "error".
func RecordUpstream(outcome string, durationSec float64) {
	UpstreamDuration.WithLabelValues(outcome).Observe(durationSec)
}

func RecordUpstreamStatus(code string) {
	UpstreamStatusTotal.WithLabelValues(code).Inc()
}
