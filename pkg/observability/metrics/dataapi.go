// Package metrics provides Prometheus metrics for Data API requests.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// dataAPIRequestDuration tracks Data API request duration in seconds.
	// Labels: action, status
	dataAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "data_api_request_duration_seconds",
			Help:    "Data API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action", "status"},
	)

	// dataAPIRequestsTotal tracks total number of Data API requests.
	// Labels: action, status
	dataAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "data_api_requests_total",
			Help: "Total number of Data API requests",
		},
		[]string{"action", "status"},
	)

	// dataAPIRequestsInFlight tracks current number of Data API requests being processed.
	dataAPIRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "data_api_requests_in_flight",
			Help: "Current number of Data API requests being processed",
		},
	)
)

// RecordActionMetrics records Data API request metrics.
// It updates the duration histogram and request counter with the provided labels.
func RecordActionMetrics(action string, status int, duration time.Duration) {
	statusStr := strconv.Itoa(status)
	dataAPIRequestDuration.WithLabelValues(action, statusStr).Observe(duration.Seconds())
	dataAPIRequestsTotal.WithLabelValues(action, statusStr).Inc()
}

// IncrementInFlight increments the in-flight requests gauge.
func IncrementInFlight() {
	dataAPIRequestsInFlight.Inc()
}

// DecrementInFlight decrements the in-flight requests gauge.
func DecrementInFlight() {
	dataAPIRequestsInFlight.Dec()
}
