package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/evolvingai/relay/pkg/availability"
	"github.com/evolvingai/relay/pkg/config"
	"github.com/evolvingai/relay/pkg/registry"
	"github.com/evolvingai/relay/pkg/telemetry/logging"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Probe configured providers once and print the verdicts",
	Long: `Build adapters from the configuration, issue one liveness probe per
provider, and print each verdict. Exits non-zero if no provider is
reachable.

Examples:
  relay probe
  relay probe --config /etc/relay/config.yaml`,
	RunE: probeProviders,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func probeProviders(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithEnvOverrides(cfgFile)
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if !verbose {
		// Keep probe output readable; warnings still surface.
		level = "warn"
	}
	if _, err := logging.SetupWriter(level, cfg.Logging.Format, os.Stderr); err != nil {
		return err
	}

	reg := registry.New(cfg)
	defer reg.Close()

	names := reg.Names()
	if len(names) == 0 {
		return fmt.Errorf("no providers configured (all credentials missing or placeholders)")
	}
	sort.Strings(names)

	tracker := availability.NewTracker(cfg.Availability.TTL, cfg.Availability.ProbeTimeout, slog.Default())

	healthy := 0
	for _, name := range names {
		p, err := reg.Get(name)
		if err != nil {
			continue
		}
		if tracker.Probe(cmd.Context(), p) {
			fmt.Printf("%-12s ok      model=%s\n", name, p.Model())
			healthy++
			continue
		}
		rec, _ := tracker.Record(name)
		fmt.Printf("%-12s failed  %s\n", name, rec.LastError)
	}

	if healthy == 0 {
		return fmt.Errorf("all %d provider(s) unreachable", len(names))
	}
	return nil
}
