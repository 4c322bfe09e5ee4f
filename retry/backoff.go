package retry

import (
	"math"
	"math/rand/v2"
	"time"
)

// Delay computes the backoff before retrying the given attempt (1-based).
// Connectivity errors take a fixed fast-path delay because they usually
// resolve within hundreds of milliseconds and should not be penalized by
// exponential growth. Everything else gets capped exponential backoff.
// No jitter is applied on this path.
func (p *Policy) Delay(attempt int, err error) time.Duration {
	if IsNetworkError(err) {
		return p.NetworkErrorDelay
	}

	if attempt < 1 {
		attempt = 1
	}

	backoff := float64(p.BaseDelay) * math.Pow(p.BackoffMultiplier, float64(attempt-1))
	if backoff > float64(p.MaxDelay) {
		backoff = float64(p.MaxDelay)
	}

	return time.Duration(backoff)
}

// Backoff is a standalone wait-duration strategy for callers composing
// their own retry loops.
type Backoff interface {
	// Next returns the duration to wait before the given retry attempt
	// (1-based).
	Next(attempt int) time.Duration
}

// ExponentialBackoff implements exponential backoff with optional jitter.
type ExponentialBackoff struct {
	initial time.Duration
	max     time.Duration
	factor  float64
	jitter  float64
}

// NewExponentialBackoff creates a new exponential backoff. The jitter
// factor (0.0 to 1.0) randomizes each delay up or down by that fraction.
func NewExponentialBackoff(initial, max time.Duration, factor, jitter float64) *ExponentialBackoff {
	return &ExponentialBackoff{
		initial: initial,
		max:     max,
		factor:  factor,
		jitter:  jitter,
	}
}

// Next implements Backoff.
func (b *ExponentialBackoff) Next(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	backoff := float64(b.initial) * math.Pow(b.factor, float64(attempt-1))
	if backoff > float64(b.max) {
		backoff = float64(b.max)
	}

	if b.jitter > 0 {
		span := backoff * b.jitter
		backoff += rand.Float64()*2*span - span
	}

	if backoff < 0 {
		backoff = 0
	}

	return time.Duration(backoff)
}

// ConstantBackoff waits the same interval before every retry.
type ConstantBackoff struct {
	interval time.Duration
}

// NewConstantBackoff creates a new constant backoff.
func NewConstantBackoff(interval time.Duration) *ConstantBackoff {
	return &ConstantBackoff{interval: interval}
}

// Next implements Backoff.
func (b *ConstantBackoff) Next(attempt int) time.Duration {
	return b.interval
}
