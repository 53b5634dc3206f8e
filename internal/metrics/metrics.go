package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthassist_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "healthassist_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Chat streaming
	ChatStreams = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthassist_chat_streams_total",
			Help: "Streamed chat replies by outcome",
		},
		[]string{"outcome"}, // "completed", "failed", "failed_before_first_fragment"
	)

	ChatFragments = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "healthassist_chat_fragments_total",
			Help: "Reply fragments received from the model",
		},
	)

	// Single-turn generations
	Generations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthassist_generations_total",
			Help: "Single-turn generations by kind and outcome",
		},
		[]string{"kind", "outcome"}, // kind: "symptoms", "appointments"
	)

	GroundingCitations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthassist_grounding_citations_total",
			Help: "Grounding citations returned, by payload kind",
		},
		[]string{"kind"}, // "maps", "web", "none"
	)

	// Sessions
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "healthassist_sessions_active",
			Help: "Signed-in sessions held in memory",
		},
	)
)
