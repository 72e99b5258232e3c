// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lightwork_auth"

var (
	// Request metrics
	APIRequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Session metrics
	TokensIssuedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Total number of session tokens issued",
		},
		[]string{"category"},
	)

	LoginCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by method and outcome",
		},
		[]string{"method", "outcome"},
	)

	// Event metrics
	EventsConsumedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_consumed_total",
			Help:      "Stream messages handled by topic and outcome",
		},
		[]string{"topic", "outcome"},
	)

	EventsPublishedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Stream messages published by topic",
		},
		[]string{"topic"},
	)
)

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, path string, status int, elapsed time.Duration) {
	APIRequestCounter.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	RequestDurationHistogram.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// RecordTokenIssued increments the tokens issued counter
func RecordTokenIssued(category string) {
	TokensIssuedCounter.WithLabelValues(category).Inc()
}

// RecordLogin counts a login attempt.
func RecordLogin(method string, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	LoginCounter.WithLabelValues(method, outcome).Inc()
}

// RecordEvent counts a consumed stream message.
func RecordEvent(topic, outcome string) {
	EventsConsumedCounter.WithLabelValues(topic, outcome).Inc()
}

// RecordPublish counts a published stream message.
func RecordPublish(topic string) {
	EventsPublishedCounter.WithLabelValues(topic).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
