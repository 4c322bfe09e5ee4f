package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*PolicyConfig)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *PolicyConfig) {},
		},
		{
			name:    "wrong kind",
			mutate:  func(c *PolicyConfig) { c.Kind = "BackoffPolicy" },
			wantErr: "unsupported kind",
		},
		{
			name:   "empty kind allowed",
			mutate: func(c *PolicyConfig) { c.Kind = "" },
		},
		{
			name:   "known preset",
			mutate: func(c *PolicyConfig) { c.Spec.Preset = PresetNetwork },
		},
		{
			name:    "unknown preset",
			mutate:  func(c *PolicyConfig) { c.Spec.Preset = "aggressive" },
			wantErr: "unknown preset",
		},
		{
			name:    "negative maxRetries",
			mutate:  func(c *PolicyConfig) { c.Spec.MaxRetries = intPtr(-1) },
			wantErr: "maxRetries",
		},
		{
			name:   "zero maxRetries allowed",
			mutate: func(c *PolicyConfig) { c.Spec.MaxRetries = intPtr(0) },
		},
		{
			name:    "multiplier below one",
			mutate:  func(c *PolicyConfig) { c.Spec.BackoffMultiplier = 0.9 },
			wantErr: "backoffMultiplier",
		},
		{
			name: "maxDelay below baseDelay",
			mutate: func(c *PolicyConfig) {
				c.Spec.BaseDelay = Duration(5 * time.Second)
				c.Spec.MaxDelay = Duration(time.Second)
			},
			wantErr: "maxDelay",
		},
		{
			name: "budget without rate",
			mutate: func(c *PolicyConfig) {
				c.Spec.Budget = &BudgetConfig{Enabled: true, Burst: 1}
			},
			wantErr: "budget.ratePerSecond",
		},
		{
			name: "budget without burst",
			mutate: func(c *PolicyConfig) {
				c.Spec.Budget = &BudgetConfig{Enabled: true, RatePerSecond: 1}
			},
			wantErr: "budget.burst",
		},
		{
			name: "disabled budget skips checks",
			mutate: func(c *PolicyConfig) {
				c.Spec.Budget = &BudgetConfig{Enabled: false}
			},
		},
		{
			name: "breaker without threshold",
			mutate: func(c *PolicyConfig) {
				c.Spec.CircuitBreaker = &CircuitBreakerConfig{
					Enabled: true,
					Timeout: Duration(time.Second),
				}
			},
			wantErr: "circuitBreaker.threshold",
		},
		{
			name: "breaker without timeout",
			mutate: func(c *PolicyConfig) {
				c.Spec.CircuitBreaker = &CircuitBreakerConfig{
					Enabled:   true,
					Threshold: 5,
				}
			},
			wantErr: "circuitBreaker.timeout",
		},
		{
			name: "disabled breaker skips checks",
			mutate: func(c *PolicyConfig) {
				c.Spec.CircuitBreaker = &CircuitBreakerConfig{Enabled: false}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfig_Nil(t *testing.T) {
	t.Parallel()

	err := ValidateConfig(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
