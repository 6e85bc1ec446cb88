// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Synchronizer poll outcomes, latency and connection state
//   - Newly observed rounds and discarded late responses
//   - Upstream API request outcomes and rejected records
//   - Consumer HTTP requests and WebSocket feed clients
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Synchronizer Metrics
var (
	PollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNamePollsTotal,
			Help:      "Total number of synchronizer poll cycles by result",
		},
		[]string{LabelSynchronizer, LabelResult},
	)

	PollDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNamePollDuration,
			Help:      "Synchronizer poll cycle latency in seconds",
			Buckets:   PollLatencyBuckets,
		},
		[]string{LabelSynchronizer},
	)

	Connected = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameConnected,
			Help:      "1 if the synchronizer's last poll succeeded, 0 otherwise",
		},
		[]string{LabelSynchronizer},
	)

	NewRoundsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameNewRoundsTotal,
			Help:      "Total number of rounds flagged as newly observed",
		},
	)

	StaleDiscarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameStaleDiscarded,
			Help:      "Responses dropped because a newer request was issued or the synchronizer stopped",
		},
		[]string{LabelSynchronizer},
	)
)

// Upstream API Metrics
var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameAPIRequestsTotal,
			Help:      "Total number of upstream API requests by endpoint and status",
		},
		[]string{LabelEndpoint, LabelStatus},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameAPIRequestDuration,
			Help:      "Upstream API request latency in seconds",
			Buckets:   PollLatencyBuckets,
		},
		[]string{LabelEndpoint},
	)

	APIInvalidRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameAPIInvalidRecords,
			Help:      "Records rejected by response validation",
		},
		[]string{LabelEndpoint},
	)

	CrashStatsCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCrashStatsCache,
			Help:      "Crash statistics cache lookups by result",
		},
		[]string{LabelResult},
	)
)

// Consumer Surface Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsTotal,
			Help:      "Total number of HTTP requests served",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestDuration,
			Help:      "HTTP request latency in seconds",
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	FeedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameFeedClients,
			Help:      "Current number of WebSocket feed clients",
		},
	)

	FeedDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameFeedDropped,
			Help:      "Feed messages dropped because a client buffer was full",
		},
	)
)
