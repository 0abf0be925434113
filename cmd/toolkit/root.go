package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// defaultConfigPath is used when neither the --config flag nor the
// TOOLKIT_CONFIG environment variable is set.
const defaultConfigPath = "configs/config.yaml"

// newRootCmd builds the toolkit command tree.
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "toolkit",
		Short: "Compare project configuration against live controllers",
		Long: `Toolkit compares the configuration editor's project database against
captured controller configuration and reports every difference.

Neither side is ever modified. The serve subcommand runs the HTTP API;
the compare subcommand runs a one-shot batch comparison.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "",
		"path to config file (default "+defaultConfigPath+", env TOOLKIT_CONFIG)")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newCompareCmd())

	return root
}

// resolveConfigPath applies the flag > environment > default precedence.
func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if path := os.Getenv("TOOLKIT_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
