// Package retry provides a retry controller with exponential backoff,
// structured error classification and cooperative cancellation.
//
// # Features
//
//   - Configurable maximum retry attempts
//   - Exponential backoff with a ceiling, plus a fixed fast path for
//     connectivity errors
//   - Structured error classification instead of message sniffing
//   - Idempotent, one-way cancellation with a dedicated error
//   - Retry budgets to cap process-wide retry rates
//   - Prometheus metrics and OTEL span events per retry decision
//
// # Usage
//
// Execute an operation with the default policy:
//
//	err := retry.Do(ctx, retry.DefaultPolicy(), func(ctx context.Context) error {
//	    return callBackend(ctx)
//	})
//
// Use a controller when the caller needs to cancel pending retries:
//
//	c := retry.NewController(retry.APICallPolicy(logger))
//	go func() { <-teardown; c.Close() }()
//	err := c.Do(ctx, op)
//
// # Presets
//
// QuickPolicy, NetworkPolicy and APICallPolicy cover the common cases:
// fail-fast UI calls, connectivity-bound calls, and instrumented backend
// calls respectively.
package retry
