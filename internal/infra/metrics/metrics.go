// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "artifolio"

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Count all http requests by status code, method and path.",
	}, []string{"status_code", "method", "path"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of all HTTP requests by status code, method and path.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status_code", "method", "path"})

	RequestsInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_in_progress_total",
		Help:      "All the requests in progress",
	}, []string{"method"})

	// Artworks counts artwork writes by action (created, updated, deleted, rejected).
	Artworks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "artworks_total",
		Help:      "Artwork save and delete outcomes.",
	}, []string{"action"})

	Comments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_total",
		Help:      "Private comment outcomes.",
	}, []string{"action"})

	Challenges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "challenges_total",
		Help:      "Challenge outcomes.",
	}, []string{"action"})
)
