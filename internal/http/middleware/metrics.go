package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Throttle counters for the wallet API. The "endpoint" label carries the
// gin route pattern for the per-IP limiter and the limiter name
// (suggest, report) for the per-user one.
var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Wallet API requests passed through a rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Wallet API requests rejected by a rate limiter",
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
}
