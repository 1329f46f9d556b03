package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	DocumentsWrittenCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_written_count",
			Help: "Total number of documents written to the store",
		},
		[]string{"collection"},
	)

	ActivityLoggedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_logged_count",
			Help: "Total number of activity records appended",
		},
		[]string{"type"},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementDocumentsWritten(collection string, n int) {
	DocumentsWrittenCount.WithLabelValues(collection).Add(float64(n))
}

func IncrementActivityLogged(activityType string) {
	ActivityLoggedCount.WithLabelValues(activityType).Inc()
}
