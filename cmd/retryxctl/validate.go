package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vyrodovalexey/retryx/config"
)

var validateConfigPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a RetryPolicy YAML file",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateConfigPath, "config", "",
		"Path to a RetryPolicy YAML file")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(validateConfigPath)
	if err != nil {
		return err
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	policy := cfg.ToPolicy(nil)

	fmt.Printf("%s: valid\n", validateConfigPath)
	fmt.Printf("  name:              %s\n", cfg.Metadata.Name)
	if cfg.Spec.Preset != "" {
		fmt.Printf("  preset:            %s\n", cfg.Spec.Preset)
	}
	fmt.Printf("  maxRetries:        %d\n", policy.MaxRetries)
	fmt.Printf("  baseDelay:         %s\n", policy.BaseDelay)
	fmt.Printf("  backoffMultiplier: %g\n", policy.BackoffMultiplier)
	fmt.Printf("  maxDelay:          %s\n", policy.MaxDelay)
	fmt.Printf("  networkErrorDelay: %s\n", policy.NetworkErrorDelay)
	if policy.Budget != nil {
		fmt.Printf("  budget:            enabled\n")
	}
	if cb := cfg.Spec.CircuitBreaker; cb != nil && cb.Enabled {
		fmt.Printf("  circuitBreaker:    threshold=%d timeout=%s\n",
			cb.Threshold, cb.Timeout.Duration())
	}
	return nil
}
