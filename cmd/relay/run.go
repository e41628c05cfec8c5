package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evolvingai/relay/pkg/availability"
	"github.com/evolvingai/relay/pkg/config"
	"github.com/evolvingai/relay/pkg/fallback"
	"github.com/evolvingai/relay/pkg/registry"
	"github.com/evolvingai/relay/pkg/server"
	"github.com/evolvingai/relay/pkg/telemetry/logging"
	"github.com/evolvingai/relay/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the relay server",
	Long: `Start the relay server with the specified configuration.

The server exposes POST /v1/generate backed by the full provider chain,
plus /healthz, /providers, and /metrics.

Examples:
  # Start with default config
  relay run

  # Start with custom config
  relay run --config /etc/relay/config.yaml

  # Override listen address
  relay run --listen 0.0.0.0:8080

  # Validate config without starting the server
  relay run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithEnvOverrides(cfgFile)
	if err != nil {
		return err
	}

	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	if _, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return err
	}

	if runFlags.dryRun {
		fmt.Println("configuration valid")
		return nil
	}

	configured := cfg.ConfiguredProviders()
	slog.Info("starting relay",
		"version", Version,
		"providers", strings.Join(configured, ","),
		"priority", strings.Join(cfg.Fallback.Priority, ","),
	)
	if len(configured) == 0 {
		slog.Warn("no providers configured; every request will fail until credentials are set")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	reg := registry.New(cfg)
	defer reg.Close()

	tracker := availability.NewTracker(cfg.Availability.TTL, cfg.Availability.ProbeTimeout, slog.Default())

	policy := fallback.Policy{
		MaxAttempts: cfg.Fallback.MaxAttempts,
		BackoffBase: cfg.Fallback.BackoffBase,
		BackoffCap:  cfg.Fallback.BackoffCap,
	}
	orch := fallback.New(reg, tracker, policy, cfg.Fallback.Priority)

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(metrics.Options{
			Namespace:      cfg.Metrics.Namespace,
			LatencyBuckets: cfg.Metrics.LatencyBuckets,
		})
		orch.AddObserver(collector)
	}

	sweeper := availability.NewSweeper(tracker, reg, cfg.Availability.SweepSchedule)
	if collector != nil {
		sweeper.SetHealthObserver(collector)
	}
	if err := sweeper.Start(ctx); err != nil {
		return err
	}
	defer sweeper.Stop()

	if cfg.Watch {
		watcher, err := config.NewWatcher(cfgFile, slog.Default())
		if err != nil {
			return fmt.Errorf("failed to create config watcher: %w", err)
		}
		go func() {
			err := watcher.Watch(ctx, func() error {
				fresh, err := config.LoadWithEnvOverrides(cfgFile)
				if err != nil {
					return err
				}
				reg.Refresh(fresh)
				tracker.Invalidate()
				orch.SetPriority(fresh.Fallback.Priority)
				return nil
			})
			if err != nil {
				slog.Error("config watcher exited", "error", err)
			}
		}()
		defer watcher.Stop()
	}

	opts := server.Options{
		Config:       cfg.Server,
		Defaults:     cfg.Defaults,
		Orchestrator: orch,
		Registry:     reg,
		Tracker:      tracker,
	}
	if collector != nil {
		opts.MetricsHandler = collector.Handler()
		opts.MetricsPath = cfg.Metrics.Path
	}

	return server.NewServer(opts).Start(ctx)
}
