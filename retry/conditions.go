package retry

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultShouldRetry is the default retry predicate. Evaluated in this
// precedence:
//
//  1. connectivity errors
//  2. HTTP 5xx (server fault, likely transient)
//  3. timeouts
//  4. known transient message substrings
//  5. HTTP 429 (rate limited)
//
// Anything else, in particular other 4xx responses, is terminal.
func DefaultShouldRetry(err error, attempt int) bool {
	if err == nil {
		return false
	}

	if IsNetworkError(err) {
		return true
	}

	httpStatus := HTTPStatusOf(err)
	if httpStatus >= 500 && httpStatus <= 599 {
		return true
	}

	if IsTimeoutError(err) {
		return true
	}

	if isTransientMessage(err) {
		return true
	}

	return httpStatus == 429
}

// Condition decides whether an error on the given attempt should be
// retried. Conditions compose via Any and All.
type Condition interface {
	ShouldRetry(err error, attempt int) bool
}

// Predicate adapts a Condition into a Policy predicate.
func Predicate(c Condition) ShouldRetryFunc {
	return c.ShouldRetry
}

// ConditionFunc adapts a plain function into a Condition.
type ConditionFunc func(err error, attempt int) bool

// ShouldRetry implements Condition.
func (f ConditionFunc) ShouldRetry(err error, attempt int) bool {
	return f(err, attempt)
}

// StatusCodeCondition retries on specific HTTP status codes carried by
// the error.
type StatusCodeCondition struct {
	codes map[int]bool
}

// OnStatusCodes creates a condition that retries on the given HTTP
// status codes.
func OnStatusCodes(statusCodes ...int) *StatusCodeCondition {
	codeMap := make(map[int]bool, len(statusCodes))
	for _, code := range statusCodes {
		codeMap[code] = true
	}
	return &StatusCodeCondition{codes: codeMap}
}

// RetryableStatusCodes returns the common retryable HTTP status codes.
func RetryableStatusCodes() *StatusCodeCondition {
	return OnStatusCodes(
		408, // Request Timeout
		429, // Too Many Requests
		500, // Internal Server Error
		502, // Bad Gateway
		503, // Service Unavailable
		504, // Gateway Timeout
	)
}

// ShouldRetry implements Condition.
func (c *StatusCodeCondition) ShouldRetry(err error, attempt int) bool {
	return c.codes[HTTPStatusOf(err)]
}

// ServerErrorCondition retries on HTTP 5xx.
type ServerErrorCondition struct{}

// On5xx creates a condition that retries on 5xx status codes.
func On5xx() *ServerErrorCondition {
	return &ServerErrorCondition{}
}

// ShouldRetry implements Condition.
func (c *ServerErrorCondition) ShouldRetry(err error, attempt int) bool {
	s := HTTPStatusOf(err)
	return s >= 500 && s < 600
}

// NetworkErrorCondition retries on connectivity failures only.
type NetworkErrorCondition struct{}

// OnNetworkErrors creates a condition that retries on connectivity
// failures only.
func OnNetworkErrors() *NetworkErrorCondition {
	return &NetworkErrorCondition{}
}

// ShouldRetry implements Condition.
func (c *NetworkErrorCondition) ShouldRetry(err error, attempt int) bool {
	return IsNetworkError(err)
}

// TimeoutCondition retries on timeouts.
type TimeoutCondition struct{}

// OnTimeout creates a condition that retries on timeouts.
func OnTimeout() *TimeoutCondition {
	return &TimeoutCondition{}
}

// ShouldRetry implements Condition.
func (c *TimeoutCondition) ShouldRetry(err error, attempt int) bool {
	return IsTimeoutError(err)
}

// GRPCStatusCondition retries on specific gRPC status codes.
type GRPCStatusCondition struct {
	codes map[codes.Code]bool
}

// OnGRPCCodes creates a condition that retries on the given gRPC status
// codes.
func OnGRPCCodes(grpcCodes ...codes.Code) *GRPCStatusCondition {
	codeMap := make(map[codes.Code]bool, len(grpcCodes))
	for _, code := range grpcCodes {
		codeMap[code] = true
	}
	return &GRPCStatusCondition{codes: codeMap}
}

// RetryableGRPCCodes returns the common retryable gRPC status codes.
func RetryableGRPCCodes() *GRPCStatusCondition {
	return OnGRPCCodes(
		codes.Unavailable,
		codes.ResourceExhausted,
		codes.Aborted,
		codes.DeadlineExceeded,
	)
}

// ShouldRetry implements Condition.
func (c *GRPCStatusCondition) ShouldRetry(err error, attempt int) bool {
	if err == nil {
		return false
	}
	st, ok := status.FromError(err)
	if !ok {
		return false
	}
	return c.codes[st.Code()]
}

// AnyCondition combines conditions with OR logic.
type AnyCondition struct {
	conditions []Condition
}

// Any creates a condition that retries if any of the conditions match.
func Any(conditions ...Condition) *AnyCondition {
	return &AnyCondition{conditions: conditions}
}

// ShouldRetry implements Condition.
func (c *AnyCondition) ShouldRetry(err error, attempt int) bool {
	for _, condition := range c.conditions {
		if condition.ShouldRetry(err, attempt) {
			return true
		}
	}
	return false
}

// AllCondition combines conditions with AND logic.
type AllCondition struct {
	conditions []Condition
}

// All creates a condition that retries only if every condition matches.
func All(conditions ...Condition) *AllCondition {
	return &AllCondition{conditions: conditions}
}

// ShouldRetry implements Condition.
func (c *AllCondition) ShouldRetry(err error, attempt int) bool {
	if len(c.conditions) == 0 {
		return false
	}
	for _, condition := range c.conditions {
		if !condition.ShouldRetry(err, attempt) {
			return false
		}
	}
	return true
}

// NeverCondition never retries.
type NeverCondition struct{}

// Never creates a condition that never retries.
func Never() *NeverCondition {
	return &NeverCondition{}
}

// ShouldRetry implements Condition.
func (c *NeverCondition) ShouldRetry(err error, attempt int) bool {
	return false
}

// AlwaysCondition retries every error, up to the policy's max retries.
type AlwaysCondition struct{}

// Always creates a condition that retries every error.
func Always() *AlwaysCondition {
	return &AlwaysCondition{}
}

// ShouldRetry implements Condition.
func (c *AlwaysCondition) ShouldRetry(err error, attempt int) bool {
	return err != nil
}
