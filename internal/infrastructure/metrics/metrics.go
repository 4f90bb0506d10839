package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Relay metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genrelay",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "genrelay",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	// Generation counters per route
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genrelay",
			Subsystem: "api",
			Name:      "generations_total",
			Help:      "Total generation attempts relayed to the provider",
		},
		[]string{"route", "status"},
	)

	// Provider call latency
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "genrelay",
			Subsystem: "api",
			Name:      "generation_duration_seconds",
			Help:      "Provider generation call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"route"},
	)

	// Upload bytes counter
	UploadBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genrelay",
			Subsystem: "api",
			Name:      "upload_bytes_total",
			Help:      "Total bytes accepted as temporary uploads",
		},
		[]string{"content_type"},
	)
)

// RecordGeneration increments the generation counter for a route outcome.
func RecordGeneration(route, status string) {
	GenerationsTotal.WithLabelValues(route, status).Inc()
}
