// Package metrics provides Prometheus metrics for the recipe gateway.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequestsTotal counts calls made to the recipe API.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recipes",
			Name:      "upstream_requests_total",
			Help:      "Total number of upstream recipe API calls",
		},
		[]string{"operation", "status"},
	)

	// UpstreamDuration measures upstream call latency.
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "recipes",
			Name:      "upstream_duration_seconds",
			Help:      "Duration of upstream recipe API calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// HTTPRequestsTotal counts requests served by the gateway.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recipes",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served",
		},
		[]string{"route", "method", "status"},
	)

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "recipes",
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter",
		},
	)

	// SearchLogErrorsTotal counts search log writes that failed.
	SearchLogErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "recipes",
			Name:      "search_log_errors_total",
			Help:      "Total number of failed search log writes",
		},
	)
)

// RecordUpstream records one upstream call. A zero status means no response was received.
func RecordUpstream(operation string, status int, seconds float64) {
	label := "transport_error"
	if status != 0 {
		label = strconv.Itoa(status)
	}
	UpstreamRequestsTotal.WithLabelValues(operation, label).Inc()
	UpstreamDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordHTTP records one served request.
func RecordHTTP(route, method string, status int) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}
