package retry

import (
	"time"

	"github.com/vyrodovalexey/retryx/observability"
)

// QuickPolicy returns a preset for low-latency, low-cost operations
// where failing fast matters more than resilience.
func QuickPolicy() *Policy {
	p := DefaultPolicy()
	p.MaxRetries = 2
	p.BaseDelay = 300 * time.Millisecond
	p.BackoffMultiplier = 1.2
	return p
}

// NetworkPolicy returns a preset for operations expected to fail mostly
// on connectivity blips. Only connectivity failures are retried, at the
// fixed network-error delay.
func NetworkPolicy() *Policy {
	p := DefaultPolicy()
	p.MaxRetries = 5
	p.BaseDelay = p.NetworkErrorDelay
	p.ShouldRetry = func(err error, attempt int) bool {
		return IsNetworkError(err)
	}
	return p
}

// APICallPolicy returns the general-purpose preset for backend call
// wrappers: default retry behavior plus structured logging of every
// retry decision and final failure.
func APICallPolicy(logger observability.Logger) *Policy {
	if logger == nil {
		logger = observability.NopLogger()
	}

	p := DefaultPolicy()
	p.Operation = "api_call"
	p.Logger = logger
	p.OnRetry = func(err error, attempt int) {
		logger.Warn("api call retry",
			observability.Int("attempt", attempt),
			observability.String("error_kind", Classify(err).Kind.String()),
			observability.Error(err),
		)
	}
	p.OnFinalFailure = func(err error, totalAttempts int) {
		logger.Error("api call failed",
			observability.Int("total_attempts", totalAttempts),
			observability.String("error_kind", Classify(err).Kind.String()),
			observability.Error(err),
		)
	}
	return p
}
