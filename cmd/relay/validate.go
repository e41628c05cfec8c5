package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evolvingai/relay/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load the configuration file, apply defaults and environment overrides,
and report the first problem found. Exits non-zero on an invalid config.

Examples:
  # Validate the default config file
  relay validate

  # Validate a specific file
  relay validate --config /etc/relay/config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadWithEnvOverrides(cfgFile)
		if err != nil {
			return err
		}

		configured := cfg.ConfiguredProviders()
		fmt.Printf("configuration valid: %s\n", cfgFile)
		fmt.Printf("  providers with credentials: %s\n", joinOrNone(configured))
		fmt.Printf("  fallback priority: %s\n", strings.Join(cfg.Fallback.Priority, ", "))
		return nil
	},
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
