package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "outreach"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Inbound HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Inbound HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// Outbound metrics are keyed by the labels promhttp round-tripper
	// instrumentation understands: code and method.
	OutboundRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Outbound requests to the completion provider.",
		},
		[]string{"code", "method"},
	)

	OutboundDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Outbound completion request latency.",
			Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"code", "method"},
	)

	SequenceUpserts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sequence_upserts_total",
			Help:      "Sequence writes by outcome (created, updated).",
		},
		[]string{"outcome"},
	)

	CompletionParses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completion_parses_total",
			Help:      "Completion parse results by outcome (ok, malformed).",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequests,
		HTTPDuration,
		OutboundRequests,
		OutboundDuration,
		SequenceUpserts,
		CompletionParses,
	)
}
