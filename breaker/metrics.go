package breaker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

// breakerTransitionsTotal counts circuit breaker state transitions.
var breakerTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "retryx_breaker_transitions_total",
		Help: "Total number of circuit breaker state transitions",
	},
	[]string{"name", "from", "to"},
)

// RecordStateChange records a circuit breaker state transition.
func RecordStateChange(name string, from, to gobreaker.State) {
	breakerTransitionsTotal.WithLabelValues(name, from.String(), to.String()).Inc()
}
