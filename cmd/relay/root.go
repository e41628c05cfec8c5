package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "Relay - resilient multi-provider text generation",
	Long: `Relay sits in front of several text-generation backends and turns them
into one dependable endpoint.

Each request walks a configured priority chain: unavailable providers are
skipped cheaply via cached liveness probes, transient failures are retried
with exponential backoff, and the next provider takes over when one gives
up. Callers get either generated text or a single aggregate error - never
a crash because one upstream had a bad minute.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
