package retry

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"strconv"
	"strings"
	"syscall"
)

// Kind is the retry-relevant classification of an error.
type Kind int

const (
	// KindUnknown indicates an error that could not be classified.
	KindUnknown Kind = iota

	// KindNetwork indicates a connectivity failure (dial, reset, refused).
	KindNetwork

	// KindServer indicates a server fault (HTTP 5xx).
	KindServer

	// KindTimeout indicates a timed-out operation.
	KindTimeout

	// KindRateLimited indicates the caller was throttled (HTTP 429).
	KindRateLimited

	// KindClient indicates a terminal client error (other HTTP 4xx).
	KindClient
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindTimeout:
		return "timeout"
	case KindRateLimited:
		return "rate_limited"
	case KindClient:
		return "client"
	default:
		return "unknown"
	}
}

// Class is the structured classification of an error, produced at the
// call boundary instead of inspecting free-form messages downstream.
type Class struct {
	Kind       Kind
	HTTPStatus int
	Message    string
}

// StatusCoder is implemented by errors that carry an HTTP status code.
type StatusCoder interface {
	HTTPStatus() int
}

// HTTPError is an error carrying an HTTP status code.
type HTTPError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "http status " + strconv.Itoa(e.Status)
}

// HTTPStatus implements StatusCoder.
func (e *HTTPError) HTTPStatus() int {
	return e.Status
}

// NewHTTPError creates an HTTPError for the given status code.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

// HTTPStatusOf extracts an HTTP status code from the error chain.
// Returns 0 if no status is carried.
func HTTPStatusOf(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.HTTPStatus()
	}
	return 0
}

// connectivitySubstrings mark an error message as a connectivity failure.
var connectivitySubstrings = []string{
	"network error",
	"failed to fetch",
	"err_connection",
	"err_network",
	"connection refused",
	"connection reset",
	"no such host",
}

// transientSubstrings mark an error message as transient without being a
// connectivity failure. These get exponential backoff, not the fast path.
var transientSubstrings = []string{
	"connection closed",
	"network error",
	"failed to fetch",
}

// IsNetworkError reports whether the error is a connectivity failure.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && !urlErr.Timeout() {
		return true
	}

	return containsAny(err.Error(), connectivitySubstrings)
}

// IsTimeoutError reports whether the error indicates a timed-out operation.
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}

// isTransientMessage reports whether the error message carries a known
// transient-failure substring.
func isTransientMessage(err error) bool {
	if err == nil {
		return false
	}
	return containsAny(err.Error(), transientSubstrings)
}

// Classify produces the structured classification of an error. The
// precedence mirrors the default retry predicate: connectivity first,
// then server faults, timeouts, throttling, terminal client errors.
func Classify(err error) Class {
	if err == nil {
		return Class{}
	}

	c := Class{Kind: KindUnknown, Message: err.Error()}
	c.HTTPStatus = HTTPStatusOf(err)

	switch {
	case IsNetworkError(err):
		c.Kind = KindNetwork
	case c.HTTPStatus >= 500 && c.HTTPStatus <= 599:
		c.Kind = KindServer
	case IsTimeoutError(err):
		c.Kind = KindTimeout
	case c.HTTPStatus == 429:
		c.Kind = KindRateLimited
	case c.HTTPStatus >= 400 && c.HTTPStatus <= 499:
		c.Kind = KindClient
	}

	return c
}

// containsAny reports whether the lowercased string contains any of the
// given lowercase substrings.
func containsAny(s string, subs []string) bool {
	s = strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
