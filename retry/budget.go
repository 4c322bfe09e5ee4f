package retry

import "golang.org/x/time/rate"

// Budget caps the rate of retries across all invocations sharing it.
// When the budget is exhausted a would-be retry fails final instead,
// which keeps a fleet of clients from hammering a struggling backend.
type Budget struct {
	limiter *rate.Limiter
}

// NewBudget creates a budget allowing retriesPerSecond sustained retries
// with the given burst.
func NewBudget(retriesPerSecond float64, burst int) *Budget {
	return &Budget{
		limiter: rate.NewLimiter(rate.Limit(retriesPerSecond), burst),
	}
}

// Allow reports whether a retry may proceed now. A nil budget always
// allows.
func (b *Budget) Allow() bool {
	if b == nil {
		return true
	}
	return b.limiter.Allow()
}
