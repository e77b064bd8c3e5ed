package app

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"courier-dispatch/internal/metrics"
	"courier-dispatch/internal/service/dispatch"
)

// registerCounter registers c with the default registry, reusing the
// existing collector when one with the same name is already registered.
// Rebuilt containers share process-global metrics.
func registerCounter(c prometheus.Counter) prometheus.Counter {
	err := prometheus.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
			return existing
		}
	}
	return c
}

func newDispatchCounters() dispatch.Counters {
	return dispatch.Counters{
		SessionsFormed: registerCounter(metrics.NewSessionsFormedTotal()),
		SessionsClosed: registerCounter(metrics.NewSessionsClosedTotal()),
		ClaimsLost:     registerCounter(metrics.NewClaimsLostTotal()),
	}
}

type rateLimitCounterOut struct {
	dig.Out
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
}

func newRateLimitCounter() rateLimitCounterOut {
	return rateLimitCounterOut{
		Counter: registerCounter(metrics.NewRateLimitExceededTotal()),
	}
}
