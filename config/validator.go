package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is the base error for configuration validation
// failures.
var ErrInvalidConfig = errors.New("invalid policy config")

// ValidateConfig validates a policy configuration document.
func ValidateConfig(c *PolicyConfig) error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if c.Kind != "" && c.Kind != "RetryPolicy" {
		return fmt.Errorf("%w: unsupported kind %q", ErrInvalidConfig, c.Kind)
	}

	switch c.Spec.Preset {
	case "", PresetQuick, PresetNetwork, PresetAPICall:
	default:
		return fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, c.Spec.Preset)
	}

	if c.Spec.MaxRetries != nil && *c.Spec.MaxRetries < 0 {
		return fmt.Errorf("%w: maxRetries must be non-negative", ErrInvalidConfig)
	}

	if c.Spec.BackoffMultiplier != 0 && c.Spec.BackoffMultiplier < 1 {
		return fmt.Errorf("%w: backoffMultiplier must be >= 1", ErrInvalidConfig)
	}

	if c.Spec.MaxDelay > 0 && c.Spec.BaseDelay > 0 && c.Spec.MaxDelay < c.Spec.BaseDelay {
		return fmt.Errorf("%w: maxDelay must not be smaller than baseDelay", ErrInvalidConfig)
	}

	if b := c.Spec.Budget; b != nil && b.Enabled {
		if b.RatePerSecond <= 0 {
			return fmt.Errorf("%w: budget.ratePerSecond must be positive", ErrInvalidConfig)
		}
		if b.Burst <= 0 {
			return fmt.Errorf("%w: budget.burst must be positive", ErrInvalidConfig)
		}
	}

	if cb := c.Spec.CircuitBreaker; cb != nil && cb.Enabled {
		if cb.Threshold <= 0 {
			return fmt.Errorf("%w: circuitBreaker.threshold must be positive", ErrInvalidConfig)
		}
		if cb.Timeout <= 0 {
			return fmt.Errorf("%w: circuitBreaker.timeout must be positive", ErrInvalidConfig)
		}
	}

	return nil
}
