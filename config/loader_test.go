package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePolicyYAML = `apiVersion: retryx/v1
kind: RetryPolicy
metadata:
  name: payroll-export
  labels:
    team: hr
spec:
  preset: api-call
  maxRetries: 4
  baseDelay: 500ms
  backoffMultiplier: 2.5
  maxDelay: 20s
  networkErrorDelay: 2s
  operation: payroll_export
  budget:
    enabled: true
    ratePerSecond: 5
    burst: 10
  circuitBreaker:
    enabled: true
    threshold: 5
    timeout: 30s
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := writeTempConfig(t, samplePolicyYAML)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "retryx/v1", cfg.APIVersion)
	assert.Equal(t, "RetryPolicy", cfg.Kind)
	assert.Equal(t, "payroll-export", cfg.Metadata.Name)
	assert.Equal(t, "hr", cfg.Metadata.Labels["team"])
	assert.Equal(t, PresetAPICall, cfg.Spec.Preset)
	require.NotNil(t, cfg.Spec.MaxRetries)
	assert.Equal(t, 4, *cfg.Spec.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Spec.BaseDelay.Duration())
	assert.Equal(t, 2.5, cfg.Spec.BackoffMultiplier)
	assert.Equal(t, 20*time.Second, cfg.Spec.MaxDelay.Duration())
	assert.Equal(t, "payroll_export", cfg.Spec.Operation)
	require.NotNil(t, cfg.Spec.Budget)
	assert.True(t, cfg.Spec.Budget.Enabled)
	assert.Equal(t, float64(5), cfg.Spec.Budget.RatePerSecond)
	require.NotNil(t, cfg.Spec.CircuitBreaker)
	assert.Equal(t, 5, cfg.Spec.CircuitBreaker.Threshold)
	assert.Equal(t, 30*time.Second, cfg.Spec.CircuitBreaker.Timeout.Duration())
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig("/nonexistent/policy.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := writeTempConfig(t, "kind: [unterminated")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadConfigFromReader(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfigFromReader(strings.NewReader(samplePolicyYAML))
	require.NoError(t, err)
	assert.Equal(t, "payroll-export", cfg.Metadata.Name)
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("RETRYX_TEST_OP", "from-env")

	cfg, err := LoadConfigFromReader(strings.NewReader(`kind: RetryPolicy
spec:
  operation: ${RETRYX_TEST_OP}
`))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Spec.Operation)
}

func TestSubstituteEnvVars_Default(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfigFromReader(strings.NewReader(`kind: RetryPolicy
spec:
  operation: ${RETRYX_TEST_UNSET_VAR:-fallback-op}
`))
	require.NoError(t, err)
	assert.Equal(t, "fallback-op", cfg.Spec.Operation)
}

func TestSubstituteEnvVars_EscapedDollar(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "${NOT_A_VAR}", substituteEnvVars("$${NOT_A_VAR}"))
}
