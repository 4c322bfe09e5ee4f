package retry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// retryAttemptsTotal counts retry attempts.
	retryAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retryx_attempts_total",
			Help: "Total number of retry attempts",
		},
		[]string{"operation", "attempt"},
	)

	// retrySuccessTotal counts operations that succeeded after retrying.
	retrySuccessTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retryx_success_total",
			Help: "Total number of operations that succeeded after at least one retry",
		},
		[]string{"operation"},
	)

	// retryFailureTotal counts operations that failed final.
	retryFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retryx_failure_total",
			Help: "Total number of operations that failed after exhausting retries",
		},
		[]string{"operation"},
	)

	// retryBudgetDeniedTotal counts retries denied by the budget.
	retryBudgetDeniedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retryx_budget_denied_total",
			Help: "Total number of retries denied by the retry budget",
		},
		[]string{"operation"},
	)

	// retryDuration measures the total duration of retried operations.
	retryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "retryx_operation_duration_seconds",
			Help:    "Total duration of retried operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "result"},
	)

	// retryBackoffDuration measures backoff wait times.
	retryBackoffDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "retryx_backoff_duration_seconds",
			Help:    "Duration of backoff waits in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "attempt"},
	)
)

// RecordRetryAttempt records a retry attempt.
func RecordRetryAttempt(operation string, attempt int) {
	retryAttemptsTotal.WithLabelValues(operation, strconv.Itoa(attempt)).Inc()
}

// RecordRetrySuccess records an operation that succeeded after retrying.
func RecordRetrySuccess(operation string) {
	retrySuccessTotal.WithLabelValues(operation).Inc()
}

// RecordRetryFailure records an operation that failed final.
func RecordRetryFailure(operation string) {
	retryFailureTotal.WithLabelValues(operation).Inc()
}

// RecordBudgetDenied records a retry denied by the budget.
func RecordBudgetDenied(operation string) {
	retryBudgetDeniedTotal.WithLabelValues(operation).Inc()
}

// RecordRetryDuration records the total duration of a retried operation.
func RecordRetryDuration(operation string, success bool, durationSeconds float64) {
	result := "success"
	if !success {
		result = "failure"
	}
	retryDuration.WithLabelValues(operation, result).Observe(durationSeconds)
}

// RecordBackoffDuration records a backoff wait duration.
func RecordBackoffDuration(operation string, attempt int, durationSeconds float64) {
	retryBackoffDuration.WithLabelValues(operation, strconv.Itoa(attempt)).Observe(durationSeconds)
}
