// Package breaker pairs the retry controller with a circuit breaker so
// a persistently failing dependency stops consuming retry attempts.
package breaker

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/vyrodovalexey/retryx/config"
	"github.com/vyrodovalexey/retryx/observability"
	"github.com/vyrodovalexey/retryx/retry"
)

// StateFunc is called when the circuit breaker changes state.
type StateFunc func(name string, from, to gobreaker.State)

// Breaker wraps gobreaker.CircuitBreaker with logging and metrics.
type Breaker struct {
	cb            *gobreaker.CircuitBreaker
	logger        observability.Logger
	stateCallback StateFunc
}

// Option is a functional option for configuring the breaker.
type Option func(*Breaker)

// WithLogger sets the logger for the breaker.
func WithLogger(logger observability.Logger) Option {
	return func(b *Breaker) {
		b.logger = logger
	}
}

// WithStateCallback sets a callback for state changes.
func WithStateCallback(fn StateFunc) Option {
	return func(b *Breaker) {
		b.stateCallback = fn
	}
}

// New creates a circuit breaker that opens once the failure ratio
// reaches one half over at least threshold requests, and probes again
// after the given timeout. Terminal client errors do not count as
// failures; the dependency is healthy, the request is not.
func New(name string, threshold int, timeout time.Duration, opts ...Option) *Breaker {
	b := &Breaker{
		logger: observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(b)
	}

	thresholdU32 := safeIntToUint32(threshold)

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: thresholdU32,
		Interval:    timeout,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= thresholdU32 && failureRatio >= 0.5
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			return retry.Classify(err).Kind == retry.KindClient
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			b.logger.Info("circuit breaker state change",
				observability.String("name", name),
				observability.String("from", from.String()),
				observability.String("to", to.String()),
			)

			RecordStateChange(name, from, to)

			if b.stateCallback != nil {
				b.stateCallback(name, from, to)
			}
		},
	}

	b.cb = gobreaker.NewCircuitBreaker(settings)
	return b
}

// FromConfig creates a breaker from a config document section. Returns
// nil when the section is absent or disabled; Do treats a nil breaker
// as a plain retry.
func FromConfig(name string, cfg *config.CircuitBreakerConfig, opts ...Option) *Breaker {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	return New(name, cfg.Threshold, cfg.Timeout.Duration(), opts...)
}

// safeIntToUint32 safely converts int to uint32.
func safeIntToUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	if n > int(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(n) //nolint:gosec // bounds checked above
}

// Execute runs the function through the circuit breaker.
func (b *Breaker) Execute(fn func() error) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	return err
}

// State returns the current state of the circuit breaker.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Name returns the name of the circuit breaker.
func (b *Breaker) Name() string {
	return b.cb.Name()
}

// IsOpen reports whether the error came from an open or saturated
// breaker rather than from the operation itself.
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests)
}

// Guard returns a copy of the policy whose predicate treats
// breaker-open errors as terminal, on top of the policy's own predicate.
func Guard(p *retry.Policy) *retry.Policy {
	if p == nil {
		p = retry.DefaultPolicy()
	}

	// Shallow copy so the caller's policy keeps its own predicate.
	guarded := *p
	base := p.ShouldRetry
	guarded.ShouldRetry = func(err error, attempt int) bool {
		if IsOpen(err) {
			return false
		}
		if base != nil {
			return base(err, attempt)
		}
		return retry.DefaultShouldRetry(err, attempt)
	}
	return &guarded
}

// Wrap returns an operation that passes every attempt through the
// breaker. A nil breaker returns the operation unchanged.
func (b *Breaker) Wrap(op retry.Operation) retry.Operation {
	if b == nil {
		return op
	}
	return func(ctx context.Context) error {
		return b.Execute(func() error {
			return op(ctx)
		})
	}
}

// Do executes the operation with retry logic, passing every attempt
// through the breaker. Breaker-open errors are terminal regardless of
// the policy predicate. A nil breaker degrades to a plain retry.
func Do(ctx context.Context, p *retry.Policy, b *Breaker, op retry.Operation) error {
	if b == nil {
		return retry.Do(ctx, p, op)
	}
	return retry.Do(ctx, Guard(p), b.Wrap(op))
}
