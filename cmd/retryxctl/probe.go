package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vyrodovalexey/retryx/breaker"
	"github.com/vyrodovalexey/retryx/config"
	"github.com/vyrodovalexey/retryx/observability"
	"github.com/vyrodovalexey/retryx/retry"
)

var (
	probeConfigPath string
	probePreset     string
	probeTimeout    time.Duration
)

var probeCmd = &cobra.Command{
	Use:   "probe URL",
	Short: "Perform an HTTP GET through the retry controller",
	Long: `Probe performs an HTTP GET against the given URL through the retry
controller, logging every retry decision. The policy comes from --config
when given, otherwise from --preset.`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().StringVar(&probeConfigPath, "config", "",
		"Path to a RetryPolicy YAML file")
	probeCmd.Flags().StringVar(&probePreset, "preset", config.PresetAPICall,
		"Policy preset (quick, network, api-call)")
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", 2*time.Minute,
		"Overall deadline for the probe including all retries")
}

func runProbe(cmd *cobra.Command, args []string) error {
	logger, err := initLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	policy, br, err := probePolicy(logger)
	if err != nil {
		return err
	}

	url := args[0]
	requestID := uuid.NewString()
	logger = logger.With(observability.String("request_id", requestID))

	ctx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
	defer cancel()

	client := &http.Client{}

	op := func(ctx context.Context) error {
		return probeOnce(ctx, client, url, requestID)
	}
	if br != nil {
		policy = breaker.Guard(policy)
		op = br.Wrap(op)
	}

	ctrl := retry.NewController(policy)
	defer ctrl.Close()

	start := time.Now()
	err = ctrl.Do(ctx, op)
	elapsed := time.Since(start)
	attempts := ctrl.Attempts()

	if err != nil {
		logger.Error("probe failed",
			observability.String("url", url),
			observability.Int("attempts", attempts),
			observability.Duration("elapsed", elapsed),
			observability.Error(err),
		)
		return fmt.Errorf("probe %s: %w", url, err)
	}

	logger.Info("probe succeeded",
		observability.String("url", url),
		observability.Int("attempts", attempts),
		observability.Duration("elapsed", elapsed),
	)
	return nil
}

// probePolicy resolves the retry policy and optional breaker from the
// config file or the preset flag.
func probePolicy(logger observability.Logger) (*retry.Policy, *breaker.Breaker, error) {
	if probeConfigPath == "" {
		cfg := config.DefaultConfig()
		cfg.Spec.Preset = probePreset
		if err := config.ValidateConfig(cfg); err != nil {
			return nil, nil, err
		}
		return cfg.ToPolicy(logger), nil, nil
	}

	cfg, err := config.LoadConfig(probeConfigPath)
	if err != nil {
		return nil, nil, err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, nil, err
	}

	br := breaker.FromConfig(cfg.Metadata.Name, cfg.Spec.CircuitBreaker,
		breaker.WithLogger(logger))

	return cfg.ToPolicy(logger), br, nil
}

// probeOnce performs a single GET and maps non-2xx responses to
// HTTPError at the boundary so classification sees a structured status.
func probeOnce(ctx context.Context, client *http.Client, url, requestID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Request-ID", requestID)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return retry.NewHTTPError(resp.StatusCode, "probe: "+resp.Status)
	}
	return nil
}
