package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AuthOperationsTotal counts login, register and logout outcomes (success, failure).
	AuthOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_operations_total",
			Help: "Total number of auth operations by outcome",
		},
		[]string{"op", "result"},
	)

	// SessionRepairsTotal counts corrupt session entries that were discarded on load.
	SessionRepairsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "session_repairs_total",
			Help: "Number of corrupt session entries removed",
		},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, AuthOperationsTotal, SessionRepairsTotal)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /posts/12 -> /posts/{id}, /posts/12/comments -> /posts/{id}/comments.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordAuth counts one auth operation. err decides the result label.
func RecordAuth(op string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	AuthOperationsTotal.WithLabelValues(op, result).Inc()
}

// IncSessionRepairs increments the corrupt session counter.
func IncSessionRepairs() {
	SessionRepairsTotal.Inc()
}
