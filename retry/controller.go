package retry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vyrodovalexey/retryx/observability"
)

// Operation is a cancellable unit of work driven by the controller.
type Operation func(ctx context.Context) error

// invocation holds the mutable state of a single Do call. It is created
// fresh per invocation and discarded when the call returns; no state is
// retained across invocations.
type invocation struct {
	attempts int
	retrying bool
	lastErr  error

	cancelOnce sync.Once
	cancelCh   chan struct{}
}

// cancel latches the invocation cancelled. Idempotent, one-way.
func (inv *invocation) cancel() {
	inv.cancelOnce.Do(func() { close(inv.cancelCh) })
}

// Controller drives sequential attempts of an operation with backoff,
// cancellation and outcome callbacks. Attempts never overlap; the two
// suspension points (the operation itself and the backoff wait) are the
// only cancellation checkpoints, so an in-flight attempt is not
// preempted.
type Controller struct {
	policy *Policy

	mu     sync.Mutex
	closed bool
	inv    *invocation
}

// NewController creates a controller for the given policy. A nil policy
// means DefaultPolicy.
func NewController(p *Policy) *Controller {
	if p == nil {
		p = DefaultPolicy()
	}
	p.Validate()
	return &Controller{policy: p}
}

// Do executes the operation with retry logic. It returns the operation's
// nil error on success, the last attempt's error once retries are
// exhausted or the error is terminal, ErrRetryCancelled if Cancel was
// called during a backoff wait, or the context error.
//
// Starting a new Do aborts the backoff wait of any invocation still
// pending on this controller.
func (c *Controller) Do(ctx context.Context, op Operation) error {
	p := c.policy

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	if c.inv != nil {
		c.inv.cancel()
	}
	inv := &invocation{cancelCh: make(chan struct{})}
	c.inv = inv
	c.mu.Unlock()

	span := trace.SpanFromContext(ctx)
	start := time.Now()

	for {
		// Cancellation checkpoint at loop entry.
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-inv.cancelCh:
			return ErrRetryCancelled
		default:
		}

		c.mu.Lock()
		inv.attempts++
		attempt := inv.attempts
		c.mu.Unlock()

		err := op(ctx)
		if err == nil {
			c.mu.Lock()
			inv.lastErr = nil
			c.mu.Unlock()
			if p.Operation != "" {
				if attempt > 1 {
					RecordRetrySuccess(p.Operation)
				}
				RecordRetryDuration(p.Operation, true, time.Since(start).Seconds())
			}
			return nil
		}

		c.mu.Lock()
		inv.lastErr = err
		c.mu.Unlock()

		if attempt > p.MaxRetries || !p.shouldRetry(err, attempt) {
			return c.failFinal(err, attempt, start)
		}

		if !p.Budget.Allow() {
			if p.Logger != nil {
				p.Logger.Warn("retry denied",
					observability.String("operation", p.Operation),
					observability.Int("attempt", attempt),
					observability.Error(ErrBudgetExhausted),
				)
			}
			if p.Operation != "" {
				RecordBudgetDenied(p.Operation)
			}
			return c.failFinal(err, attempt, start)
		}

		if p.OnRetry != nil {
			p.OnRetry(err, attempt)
		}

		delay := p.Delay(attempt, err)

		if p.Logger != nil {
			p.Logger.Debug("retrying operation",
				observability.String("operation", p.Operation),
				observability.Int("attempt", attempt),
				observability.Int("max_retries", p.MaxRetries),
				observability.Duration("wait", delay),
				observability.Error(err),
			)
		}
		if span.IsRecording() {
			span.AddEvent("retry.backoff", trace.WithAttributes(
				attribute.String("retry.operation", p.Operation),
				attribute.Int("retry.attempt", attempt),
				attribute.String("retry.error_kind", Classify(err).Kind.String()),
				attribute.String("retry.delay", delay.String()),
			))
		}
		if p.Operation != "" {
			RecordRetryAttempt(p.Operation, attempt)
			RecordBackoffDuration(p.Operation, attempt, delay.Seconds())
		}

		c.setRetrying(inv, true)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			c.setRetrying(inv, false)
			return ctx.Err()
		case <-inv.cancelCh:
			timer.Stop()
			c.setRetrying(inv, false)
			return ErrRetryCancelled
		case <-timer.C:
			c.setRetrying(inv, false)
		}
	}
}

// failFinal fires the final-failure side effects and surfaces the last
// attempt's error unchanged.
func (c *Controller) failFinal(err error, attempts int, start time.Time) error {
	p := c.policy

	if p.OnFinalFailure != nil {
		p.OnFinalFailure(err, attempts)
	}
	if p.Logger != nil {
		p.Logger.Error("operation failed",
			observability.String("operation", p.Operation),
			observability.Int("total_attempts", attempts),
			observability.Error(err),
		)
	}
	if p.Operation != "" {
		RecordRetryFailure(p.Operation)
		RecordRetryDuration(p.Operation, false, time.Since(start).Seconds())
	}
	return err
}

// setRetrying flips the waiting-in-backoff flag.
func (c *Controller) setRetrying(inv *invocation, v bool) {
	c.mu.Lock()
	inv.retrying = v
	c.mu.Unlock()
}

// Cancel aborts the backoff wait of the active invocation, if any. It is
// idempotent and safe to call from any goroutine. An attempt already in
// flight is not interrupted; cancellation takes effect at the next
// checkpoint.
func (c *Controller) Cancel() {
	c.mu.Lock()
	inv := c.inv
	c.mu.Unlock()

	if inv != nil {
		inv.cancel()
	}
}

// Close cancels any pending wait and rejects further invocations. It
// releases the pending delay timer so no callback fires after disposal.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	inv := c.inv
	c.mu.Unlock()

	if inv != nil {
		inv.cancel()
	}
}

// Attempts returns the attempt count of the most recent invocation.
func (c *Controller) Attempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inv == nil {
		return 0
	}
	return c.inv.attempts
}

// IsRetrying reports whether the active invocation is waiting in a
// backoff delay.
func (c *Controller) IsRetrying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inv == nil {
		return false
	}
	return c.inv.retrying
}

// LastError returns the most recent attempt error of the active
// invocation, or nil after success.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inv == nil {
		return nil
	}
	return c.inv.lastErr
}

// Do executes the operation with retry logic under a fresh controller.
func Do(ctx context.Context, p *Policy, op Operation) error {
	return NewController(p).Do(ctx, op)
}

// DoValue executes a value-returning operation with retry logic under a
// fresh controller. On failure the zero value is returned together with
// the surfaced error.
func DoValue[T any](ctx context.Context, p *Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := NewController(p).Do(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
