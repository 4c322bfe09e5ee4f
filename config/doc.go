// Package config loads retry policy documents from YAML.
//
// A policy document looks like:
//
//	apiVersion: retryx/v1
//	kind: RetryPolicy
//	metadata:
//	  name: payroll-export
//	spec:
//	  preset: api-call
//	  maxRetries: 4
//	  baseDelay: "500ms"
//	  maxDelay: "10s"
//	  operation: payroll-export
//	  budget:
//	    enabled: true
//	    ratePerSecond: 5
//	    burst: 10
//
// Values support ${VAR} and ${VAR:-default} environment substitution.
// The Watcher reloads the file on change with debouncing, so tuned
// parameters reach long-running processes without a restart.
package config
