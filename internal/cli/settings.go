package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gpuhost-io/gpuhost/internal/models"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or update the worker's rental settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connectBridge()
		if err != nil {
			return err
		}

		var ps models.ProviderSettings
		if err := client.get("/settings", &ps); err != nil {
			return err
		}

		printProviderSettings(ps)
		return nil
	},
}

var (
	setDefaultRate   float64
	setCurrency      string
	setMinDuration   uint32
	setMaxConcurrent uint32
)

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update rental settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connectBridge()
		if err != nil {
			return err
		}

		// Read-modify-write: fetch current settings, overlay the flags the
		// user actually passed, and push the result back.
		var current models.ProviderSettings
		if err := client.get("/settings", &current); err != nil {
			return err
		}

		if cmd.Flags().Changed("rate") {
			current.DefaultHourlyRate = setDefaultRate
		}
		if cmd.Flags().Changed("currency") {
			current.PreferredCurrency = setCurrency
		}
		if cmd.Flags().Changed("min-duration") {
			current.MinJobDurationMinutes = setMinDuration
		}
		if cmd.Flags().Changed("max-jobs") {
			current.MaxConcurrentJobs = setMaxConcurrent
		}

		var confirmed models.ProviderSettings
		if err := client.put("/settings", current, &confirmed); err != nil {
			return err
		}

		fmt.Println("Settings updated:")
		printProviderSettings(confirmed)
		return nil
	},
}

func printProviderSettings(ps models.ProviderSettings) {
	fmt.Printf("Default hourly rate: %.2f\n", ps.DefaultHourlyRate)
	fmt.Printf("Currency:            %s\n", ps.PreferredCurrency)
	fmt.Printf("Min job duration:    %d min\n", ps.MinJobDurationMinutes)
	fmt.Printf("Max concurrent jobs: %d\n", ps.MaxConcurrentJobs)
}

func init() {
	settingsSetCmd.Flags().Float64Var(&setDefaultRate, "rate", 0, "default hourly rate")
	settingsSetCmd.Flags().StringVar(&setCurrency, "currency", "", "preferred currency")
	settingsSetCmd.Flags().Uint32Var(&setMinDuration, "min-duration", 0, "minimum job duration in minutes")
	settingsSetCmd.Flags().Uint32Var(&setMaxConcurrent, "max-jobs", 0, "maximum concurrent jobs")

	settingsCmd.AddCommand(settingsSetCmd)
}
