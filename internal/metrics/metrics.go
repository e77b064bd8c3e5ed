package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewSessionsFormedTotal returns a counter for formed assignment sessions
func NewSessionsFormedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_sessions_formed_total",
		Help: "Total number of assignment sessions formed",
	})
}

// NewSessionsClosedTotal returns a counter for closed (paid out) sessions
func NewSessionsClosedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_sessions_closed_total",
		Help: "Total number of assignment sessions closed with payout",
	})
}

// NewClaimsLostTotal returns a counter for order claims lost to a concurrent
// courier and recovered by re-running the allocator
func NewClaimsLostTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_order_claims_lost_total",
		Help: "Total number of order claims lost to a concurrent courier",
	})
}

// NewRateLimitExceededTotal returns a counter for HTTP requests rejected by
// the rate limiter
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}
