package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Fetch cycle metrics
	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mention_fetches_total",
			Help: "Total number of source fetch cycles",
		},
		[]string{"source", "status"},
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mention_fetch_duration_seconds",
			Help:    "Source fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	MentionsFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentions_fetched_total",
			Help: "Total number of mentions returned by sources, before deduplication",
		},
		[]string{"source"},
	)

	MentionsStored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentions_stored_total",
			Help: "Total number of new mentions inserted into the store",
		},
		[]string{"source", "sentiment"},
	)

	StoreSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mention_store_size",
			Help: "Number of mentions currently held in memory",
		},
	)

	SpikesDetected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mention_spikes_detected_total",
			Help: "Total number of mention volume spikes detected",
		},
	)
)
