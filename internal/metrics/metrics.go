// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Generation outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeInvalid         = "invalid"
	OutcomeRateLimited     = "rate_limited"
	OutcomePaymentRequired = "payment_required"
	OutcomeUpstreamError   = "upstream_error"
	OutcomeError           = "error"
)

var (
	Generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ideagen", Name: "generations_total", Help: "Idea generation requests by outcome."},
		[]string{"outcome"},
	)
	UpstreamDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: "ideagen", Name: "upstream_duration_seconds", Help: "Latency of calls to the text-generation endpoint.", Buckets: prometheus.ExponentialBuckets(0.25, 2, 8)},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ideagen", Name: "rate_limit_allowed_total", Help: "Requests allowed by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ideagen", Name: "rate_limit_rejected_total", Help: "Requests rejected by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(Generations)
	reg.MustRegister(UpstreamDuration)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
