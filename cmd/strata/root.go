package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Strata - structural trait checking for runtime values",
	Long: `Strata checks runtime values against declarative trait definitions.

A trait names a set of required or optional fields with expected types.
Traits combine through union, intersect, and minus, and values are checked
against them under a configurable compatibility policy:
  - Structural satisfaction checks with full diagnostic reports
  - Numeric and optional widening rules
  - Subtype comparison between traits
  - YAML trait files with hot-reload`,
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
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
