package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gpuhost-io/gpuhost/internal/models"
)

var gpusCmd = &cobra.Command{
	Use:   "gpus",
	Short: "List detected GPUs",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connectBridge()
		if err != nil {
			return err
		}

		var gpus []models.GpuInfo
		if err := client.get("/gpus", &gpus); err != nil {
			return err
		}

		if len(gpus) == 0 {
			fmt.Println("No GPUs detected")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tVRAM\tFOR RENT\tRATE")
		for _, g := range gpus {
			rate := "-"
			if g.CurrentHourlyRate != nil {
				rate = fmt.Sprintf("%.2f/h", *g.CurrentHourlyRate)
			}
			fmt.Fprintf(w, "%s\t%s\t%d/%d MB\t%t\t%s\n",
				g.ID, g.Name, g.VRAMFreeMB, g.VRAMTotalMB, g.IsAvailableForRent, rate)
		}
		return w.Flush()
	},
}

var (
	rentRate      float64
	rentAvailable bool
)

var gpusRentCmd = &cobra.Command{
	Use:   "rent <gpu-id>",
	Short: "Set a GPU's rental rate and availability",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connectBridge()
		if err != nil {
			return err
		}

		body := map[string]interface{}{
			"hourly_rate": rentRate,
			"available":   rentAvailable,
		}
		var gpu models.GpuInfo
		if err := client.post("/gpus/"+args[0]+"/rental", body, &gpu); err != nil {
			return err
		}

		fmt.Printf("Updated %s: for rent=%t", gpu.ID, gpu.IsAvailableForRent)
		if gpu.CurrentHourlyRate != nil {
			fmt.Printf(", rate=%.2f/h", *gpu.CurrentHourlyRate)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	gpusRentCmd.Flags().Float64Var(&rentRate, "rate", 0, "hourly rate")
	gpusRentCmd.Flags().BoolVar(&rentAvailable, "available", true, "available for rent")
	_ = gpusRentCmd.MarkFlagRequired("rate")

	gpusCmd.AddCommand(gpusRentCmd)
}
