package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gpuhost-io/gpuhost/internal/models"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Control the supervised provider worker",
}

var workerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the worker status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connectBridge()
		if err != nil {
			return err
		}

		var resp struct {
			Status models.DaemonStatus `json:"status"`
		}
		if err := client.get("/daemon/status", &resp); err != nil {
			return err
		}
		fmt.Println(resp.Status)
		return nil
	},
}

var workerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the provider worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connectBridge()
		if err != nil {
			return err
		}

		var resp struct {
			Status models.DaemonStatus `json:"status"`
		}
		if err := client.post("/daemon/start", nil, &resp); err != nil {
			return err
		}
		fmt.Printf("Worker status: %s\n", resp.Status)
		return nil
	},
}

var workerStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the provider worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connectBridge()
		if err != nil {
			return err
		}

		var resp struct {
			Status models.DaemonStatus `json:"status"`
		}
		if err := client.post("/daemon/stop", nil, &resp); err != nil {
			return err
		}
		fmt.Printf("Worker status: %s\n", resp.Status)
		return nil
	},
}

func init() {
	workerCmd.AddCommand(workerStatusCmd)
	workerCmd.AddCommand(workerStartCmd)
	workerCmd.AddCommand(workerStopCmd)
}
