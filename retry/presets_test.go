package retry

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/retryx/observability"
)

func TestQuickPolicy(t *testing.T) {
	t.Parallel()

	p := QuickPolicy()

	assert.Equal(t, 2, p.MaxRetries)
	assert.Equal(t, 300*time.Millisecond, p.BaseDelay)
	assert.Equal(t, 1.2, p.BackoffMultiplier)
	assert.Equal(t, DefaultMaxDelay, p.MaxDelay)
}

func TestNetworkPolicy(t *testing.T) {
	t.Parallel()

	p := NetworkPolicy()

	assert.Equal(t, 5, p.MaxRetries)
	assert.Equal(t, p.NetworkErrorDelay, p.BaseDelay)
	require.NotNil(t, p.ShouldRetry)

	// Only connectivity failures are retried.
	assert.True(t, p.ShouldRetry(&net.OpError{Op: "dial", Err: errors.New("refused")}, 1))
	assert.False(t, p.ShouldRetry(NewHTTPError(503, "unavailable"), 1))
	assert.False(t, p.ShouldRetry(errors.New("statement timeout"), 1))
}

func TestAPICallPolicy(t *testing.T) {
	t.Parallel()

	p := APICallPolicy(observability.NopLogger())

	assert.Equal(t, "api_call", p.Operation)
	assert.Equal(t, DefaultMaxRetries, p.MaxRetries)
	require.NotNil(t, p.Logger)
	require.NotNil(t, p.OnRetry)
	require.NotNil(t, p.OnFinalFailure)

	// Callbacks must tolerate any error shape.
	p.OnRetry(NewHTTPError(502, "bad gateway"), 1)
	p.OnFinalFailure(errors.New("gave up"), 4)
}

func TestAPICallPolicy_NilLogger(t *testing.T) {
	t.Parallel()

	p := APICallPolicy(nil)
	require.NotNil(t, p.Logger)
	p.OnRetry(errors.New("x"), 1)
}
