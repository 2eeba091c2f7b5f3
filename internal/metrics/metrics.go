package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestTotal counts HTTP requests by method, route pattern and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	// CacheLookups counts memoized query lookups by result (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_cache_lookups_total",
			Help: "Total number of query cache lookups",
		},
		[]string{"result"},
	)
	// Submissions counts enrollment submissions by outcome.
	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_enrollment_submissions_total",
			Help: "Total number of enrollment submissions",
		},
		[]string{"outcome"},
	)
	// Reloads counts dataset reloads by result (ok, error).
	Reloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_dataset_reloads_total",
			Help: "Total number of dataset reloads",
		},
		[]string{"result"},
	)
	// LiveConnections is the number of open live-filter websockets.
	LiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portal_live_connections",
			Help: "Number of open live filtering connections",
		},
	)
)
