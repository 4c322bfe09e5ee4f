package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBudget_Allow(t *testing.T) {
	t.Parallel()

	// 1 retry per hour with a burst of 2: the first two pass, the
	// third is denied.
	b := NewBudget(1.0/3600, 2)

	assert.True(t, b.Allow())
	assert.True(t, b.Allow())
	assert.False(t, b.Allow())
}

func TestBudget_NilAlwaysAllows(t *testing.T) {
	t.Parallel()

	var b *Budget
	assert.True(t, b.Allow())
}

func TestBudget_Refill(t *testing.T) {
	t.Parallel()

	// High sustained rate refills immediately for practical purposes.
	b := NewBudget(1000, 1)

	assert.True(t, b.Allow())
	assert.Eventually(t, b.Allow, 100*time.Millisecond, time.Millisecond)
}
