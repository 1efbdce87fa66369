// Package cli implements the gpuhost CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gpuhost",
	Short: "Control the GPU Host provider shell",
	Long: `gpuhost talks to a running gpuhostd over its local bridge.
It can start and stop the provider worker, inspect GPUs and jobs,
and follow the worker's activity feed.`,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands (alphabetical)
	rootCmd.AddCommand(financialCmd)
	rootCmd.AddCommand(gpusCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(networkCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(systemCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(versionCmd)
}
