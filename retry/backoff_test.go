package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_Delay_Exponential(t *testing.T) {
	t.Parallel()

	p := &Policy{
		BaseDelay:         100 * time.Millisecond,
		BackoffMultiplier: 2,
		MaxDelay:          10 * time.Second,
		NetworkErrorDelay: time.Second,
	}

	serverErr := NewHTTPError(503, "unavailable")

	tests := []struct {
		name     string
		attempt  int
		expected time.Duration
	}{
		{"first retry", 1, 100 * time.Millisecond},
		{"second retry", 2, 200 * time.Millisecond},
		{"third retry", 3, 400 * time.Millisecond},
		{"seventh retry capped", 8, 10 * time.Second},
		{"attempt below one clamps", 0, 100 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, p.Delay(tt.attempt, serverErr))
		})
	}
}

func TestPolicy_Delay_NetworkFastPath(t *testing.T) {
	t.Parallel()

	p := &Policy{
		BaseDelay:         100 * time.Millisecond,
		BackoffMultiplier: 2,
		MaxDelay:          10 * time.Second,
		NetworkErrorDelay: time.Second,
	}

	netErr := errors.New("Failed to fetch")

	// The fixed delay applies regardless of attempt number.
	for _, attempt := range []int{1, 2, 5, 10} {
		assert.Equal(t, time.Second, p.Delay(attempt, netErr))
	}
}

func TestPolicy_Delay_FractionalMultiplier(t *testing.T) {
	t.Parallel()

	p := QuickPolicy()
	serverErr := NewHTTPError(500, "boom")

	assert.Equal(t, 300*time.Millisecond, p.Delay(1, serverErr))
	// 300ms * 1.2 is subject to float rounding, allow a whisker.
	assert.InDelta(t, float64(360*time.Millisecond), float64(p.Delay(2, serverErr)),
		float64(time.Microsecond))
}

func TestExponentialBackoff_NoJitter(t *testing.T) {
	t.Parallel()

	b := NewExponentialBackoff(100*time.Millisecond, time.Second, 2, 0)

	assert.Equal(t, 100*time.Millisecond, b.Next(1))
	assert.Equal(t, 200*time.Millisecond, b.Next(2))
	assert.Equal(t, 400*time.Millisecond, b.Next(3))
	assert.Equal(t, time.Second, b.Next(10))
}

func TestExponentialBackoff_JitterBounds(t *testing.T) {
	t.Parallel()

	b := NewExponentialBackoff(100*time.Millisecond, 10*time.Second, 2, 0.5)

	for i := 0; i < 100; i++ {
		d := b.Next(2)
		assert.GreaterOrEqual(t, d, 100*time.Millisecond)
		assert.LessOrEqual(t, d, 300*time.Millisecond)
	}
}

func TestConstantBackoff(t *testing.T) {
	t.Parallel()

	b := NewConstantBackoff(250 * time.Millisecond)

	assert.Equal(t, 250*time.Millisecond, b.Next(1))
	assert.Equal(t, 250*time.Millisecond, b.Next(7))
}
