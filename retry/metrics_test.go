package retry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRetryAttempt(t *testing.T) {
	op := "metrics-attempt-test"

	RecordRetryAttempt(op, 1)
	RecordRetryAttempt(op, 1)
	RecordRetryAttempt(op, 2)

	m, err := retryAttemptsTotal.GetMetricWithLabelValues(op, "1")
	require.NoError(t, err)
	out := &dto.Metric{}
	require.NoError(t, m.Write(out))
	assert.Equal(t, float64(2), *out.Counter.Value)

	m, err = retryAttemptsTotal.GetMetricWithLabelValues(op, "2")
	require.NoError(t, err)
	out = &dto.Metric{}
	require.NoError(t, m.Write(out))
	assert.Equal(t, float64(1), *out.Counter.Value)
}

func TestRecordRetryOutcomes(t *testing.T) {
	op := "metrics-outcome-test"

	RecordRetrySuccess(op)
	RecordRetryFailure(op)
	RecordRetryFailure(op)
	RecordBudgetDenied(op)

	m, err := retrySuccessTotal.GetMetricWithLabelValues(op)
	require.NoError(t, err)
	out := &dto.Metric{}
	require.NoError(t, m.Write(out))
	assert.Equal(t, float64(1), *out.Counter.Value)

	m, err = retryFailureTotal.GetMetricWithLabelValues(op)
	require.NoError(t, err)
	out = &dto.Metric{}
	require.NoError(t, m.Write(out))
	assert.Equal(t, float64(2), *out.Counter.Value)

	m, err = retryBudgetDeniedTotal.GetMetricWithLabelValues(op)
	require.NoError(t, err)
	out = &dto.Metric{}
	require.NoError(t, m.Write(out))
	assert.Equal(t, float64(1), *out.Counter.Value)
}

func histogramMetric(t *testing.T, obs prometheus.Observer) *dto.Metric {
	t.Helper()
	m, ok := obs.(prometheus.Metric)
	require.True(t, ok)
	out := &dto.Metric{}
	require.NoError(t, m.Write(out))
	require.NotNil(t, out.Histogram)
	return out
}

func TestRecordRetryDuration(t *testing.T) {
	op := "metrics-duration-test"

	RecordRetryDuration(op, true, 0.05)
	RecordRetryDuration(op, true, 0.2)
	RecordRetryDuration(op, false, 1.5)

	obs, err := retryDuration.GetMetricWithLabelValues(op, "success")
	require.NoError(t, err)
	out := histogramMetric(t, obs)
	assert.Equal(t, uint64(2), *out.Histogram.SampleCount)
	assert.InDelta(t, 0.25, *out.Histogram.SampleSum, 1e-9)

	obs, err = retryDuration.GetMetricWithLabelValues(op, "failure")
	require.NoError(t, err)
	out = histogramMetric(t, obs)
	assert.Equal(t, uint64(1), *out.Histogram.SampleCount)
}

func TestRecordBackoffDuration(t *testing.T) {
	op := "metrics-backoff-test"

	RecordBackoffDuration(op, 1, 0.1)
	RecordBackoffDuration(op, 1, 0.2)

	obs, err := retryBackoffDuration.GetMetricWithLabelValues(op, "1")
	require.NoError(t, err)
	out := histogramMetric(t, obs)
	assert.Equal(t, uint64(2), *out.Histogram.SampleCount)
}
