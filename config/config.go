package config

import (
	"github.com/vyrodovalexey/retryx/observability"
	"github.com/vyrodovalexey/retryx/retry"
)

// Recognized preset names for PolicySpec.Preset.
const (
	PresetQuick   = "quick"
	PresetNetwork = "network"
	PresetAPICall = "api-call"
)

// PolicyConfig is the YAML document describing a retry policy.
type PolicyConfig struct {
	APIVersion string     `yaml:"apiVersion"`
	Kind       string     `yaml:"kind"`
	Metadata   Metadata   `yaml:"metadata"`
	Spec       PolicySpec `yaml:"spec"`
}

// Metadata holds document identification.
type Metadata struct {
	Name   string            `yaml:"name"`
	Labels map[string]string `yaml:"labels,omitempty"`
}

// PolicySpec holds the retry policy parameters. A preset supplies the
// base values; explicitly set fields override it. MaxRetries is a
// pointer so an explicit zero (never retry) is distinguishable from
// unset.
type PolicySpec struct {
	Preset            string                `yaml:"preset,omitempty"`
	MaxRetries        *int                  `yaml:"maxRetries,omitempty"`
	BaseDelay         Duration              `yaml:"baseDelay,omitempty"`
	BackoffMultiplier float64               `yaml:"backoffMultiplier,omitempty"`
	MaxDelay          Duration              `yaml:"maxDelay,omitempty"`
	NetworkErrorDelay Duration              `yaml:"networkErrorDelay,omitempty"`
	Operation         string                `yaml:"operation,omitempty"`
	Budget            *BudgetConfig         `yaml:"budget,omitempty"`
	CircuitBreaker    *CircuitBreakerConfig `yaml:"circuitBreaker,omitempty"`
}

// BudgetConfig configures the process-wide retry budget.
type BudgetConfig struct {
	Enabled       bool    `yaml:"enabled"`
	RatePerSecond float64 `yaml:"ratePerSecond"`
	Burst         int     `yaml:"burst"`
}

// CircuitBreakerConfig configures the companion circuit breaker.
type CircuitBreakerConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Threshold int      `yaml:"threshold"`
	Timeout   Duration `yaml:"timeout"`
}

// DefaultConfig returns a PolicyConfig with default values.
func DefaultConfig() *PolicyConfig {
	return &PolicyConfig{
		APIVersion: "retryx/v1",
		Kind:       "RetryPolicy",
		Metadata:   Metadata{Name: "default"},
	}
}

// ToPolicy builds a retry.Policy from the configuration. The preset, if
// any, supplies base values; explicitly set spec fields override them.
func (c *PolicyConfig) ToPolicy(logger observability.Logger) *retry.Policy {
	var p *retry.Policy

	switch c.Spec.Preset {
	case PresetQuick:
		p = retry.QuickPolicy()
	case PresetNetwork:
		p = retry.NetworkPolicy()
	case PresetAPICall:
		p = retry.APICallPolicy(logger)
	default:
		p = retry.DefaultPolicy()
	}

	if c.Spec.MaxRetries != nil {
		p.MaxRetries = *c.Spec.MaxRetries
	}
	if c.Spec.BaseDelay > 0 {
		p.BaseDelay = c.Spec.BaseDelay.Duration()
	}
	if c.Spec.BackoffMultiplier > 0 {
		p.BackoffMultiplier = c.Spec.BackoffMultiplier
	}
	if c.Spec.MaxDelay > 0 {
		p.MaxDelay = c.Spec.MaxDelay.Duration()
	}
	if c.Spec.NetworkErrorDelay > 0 {
		p.NetworkErrorDelay = c.Spec.NetworkErrorDelay.Duration()
	}
	if c.Spec.Operation != "" {
		p.Operation = c.Spec.Operation
	}
	if c.Spec.Budget != nil && c.Spec.Budget.Enabled {
		p.Budget = retry.NewBudget(c.Spec.Budget.RatePerSecond, c.Spec.Budget.Burst)
	}
	if logger != nil {
		p.Logger = logger
	}

	p.Validate()
	return p
}
