package retry

import (
	"time"

	"github.com/vyrodovalexey/retryx/observability"
)

// Default retry configuration constants.
const (
	// DefaultMaxRetries is the default maximum number of retry attempts.
	DefaultMaxRetries = 3

	// DefaultBaseDelay is the default first-retry backoff duration.
	DefaultBaseDelay = 1 * time.Second

	// DefaultBackoffMultiplier is the default exponential growth factor.
	DefaultBackoffMultiplier = 2.0

	// DefaultMaxDelay caps exponential backoff growth.
	DefaultMaxDelay = 10 * time.Second

	// DefaultNetworkErrorDelay is the fixed fast-path delay for
	// connectivity errors, which usually resolve within a second.
	DefaultNetworkErrorDelay = 1 * time.Second
)

// ShouldRetryFunc decides whether an error on the given attempt (1-based)
// should trigger another attempt.
type ShouldRetryFunc func(err error, attempt int) bool

// OnRetryFunc is called once per retry decision, before the backoff wait.
type OnRetryFunc func(err error, attempt int)

// OnFinalFailureFunc is called at most once per invocation, when retries
// are exhausted or the error is terminal. It is never called on success
// or cancellation.
type OnFinalFailureFunc func(err error, totalAttempts int)

// Policy defines the retry policy configuration. A Policy is supplied
// once per controller and never mutated by the controller.
type Policy struct {
	// MaxRetries is the maximum number of retry attempts after the
	// initial one.
	MaxRetries int

	// BaseDelay is the backoff before the first retry.
	BaseDelay time.Duration

	// BackoffMultiplier is the exponential growth factor (>= 1).
	BackoffMultiplier float64

	// MaxDelay caps the computed backoff.
	MaxDelay time.Duration

	// NetworkErrorDelay is the fixed delay used for connectivity
	// errors instead of exponential backoff.
	NetworkErrorDelay time.Duration

	// ShouldRetry decides whether an error is worth retrying.
	// Nil means DefaultShouldRetry.
	ShouldRetry ShouldRetryFunc

	// OnRetry is called before each backoff wait.
	OnRetry OnRetryFunc

	// OnFinalFailure is called when the invocation gives up.
	OnFinalFailure OnFinalFailureFunc

	// Operation labels metrics and log entries. Empty disables metrics.
	Operation string

	// Budget optionally caps the process-wide retry rate.
	Budget *Budget

	// Logger for logging retry decisions.
	Logger observability.Logger
}

// DefaultPolicy returns a Policy with default values.
func DefaultPolicy() *Policy {
	return &Policy{
		MaxRetries:        DefaultMaxRetries,
		BaseDelay:         DefaultBaseDelay,
		BackoffMultiplier: DefaultBackoffMultiplier,
		MaxDelay:          DefaultMaxDelay,
		NetworkErrorDelay: DefaultNetworkErrorDelay,
	}
}

// Validate validates and normalizes the policy.
func (p *Policy) Validate() {
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	if p.BackoffMultiplier < 1 {
		p.BackoffMultiplier = DefaultBackoffMultiplier
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = DefaultMaxDelay
	}
	if p.NetworkErrorDelay <= 0 {
		p.NetworkErrorDelay = DefaultNetworkErrorDelay
	}
}

// shouldRetry applies the configured predicate, falling back to the
// default one.
func (p *Policy) shouldRetry(err error, attempt int) bool {
	if p.ShouldRetry != nil {
		return p.ShouldRetry(err, attempt)
	}
	return DefaultShouldRetry(err, attempt)
}

// WithMaxRetries sets the maximum retries.
func (p *Policy) WithMaxRetries(n int) *Policy {
	p.MaxRetries = n
	return p
}

// WithBaseDelay sets the first-retry backoff.
func (p *Policy) WithBaseDelay(d time.Duration) *Policy {
	p.BaseDelay = d
	return p
}

// WithBackoffMultiplier sets the exponential growth factor.
func (p *Policy) WithBackoffMultiplier(f float64) *Policy {
	p.BackoffMultiplier = f
	return p
}

// WithMaxDelay sets the backoff cap.
func (p *Policy) WithMaxDelay(d time.Duration) *Policy {
	p.MaxDelay = d
	return p
}

// WithNetworkErrorDelay sets the connectivity-error fast-path delay.
func (p *Policy) WithNetworkErrorDelay(d time.Duration) *Policy {
	p.NetworkErrorDelay = d
	return p
}

// WithShouldRetry sets the retry predicate.
func (p *Policy) WithShouldRetry(fn ShouldRetryFunc) *Policy {
	p.ShouldRetry = fn
	return p
}

// WithOnRetry sets the retry callback.
func (p *Policy) WithOnRetry(fn OnRetryFunc) *Policy {
	p.OnRetry = fn
	return p
}

// WithOnFinalFailure sets the final-failure callback.
func (p *Policy) WithOnFinalFailure(fn OnFinalFailureFunc) *Policy {
	p.OnFinalFailure = fn
	return p
}

// WithOperation sets the metrics/logging label.
func (p *Policy) WithOperation(name string) *Policy {
	p.Operation = name
	return p
}

// WithBudget sets the retry budget.
func (p *Policy) WithBudget(b *Budget) *Policy {
	p.Budget = b
	return p
}

// WithLogger sets the logger.
func (p *Policy) WithLogger(logger observability.Logger) *Policy {
	p.Logger = logger
	return p
}

// NoRetryPolicy returns a policy that never retries.
func NoRetryPolicy() *Policy {
	p := DefaultPolicy()
	p.MaxRetries = 0
	return p
}
