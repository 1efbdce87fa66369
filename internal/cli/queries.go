package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gpuhost-io/gpuhost/internal/models"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Show the worker's network status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connectBridge()
		if err != nil {
			return err
		}

		var ns models.NetworkStatus
		if err := client.get("/network", &ns); err != nil {
			return err
		}

		fmt.Printf("Connection: %s\n", ns.ConnectionType)
		if ns.IPAddress != nil {
			fmt.Printf("IP:         %s\n", *ns.IPAddress)
		}
		fmt.Printf("Upload:     %.1f Mbps\n", ns.UploadSpeedMbps)
		fmt.Printf("Download:   %.1f Mbps\n", ns.DownloadSpeedMbps)
		fmt.Printf("Latency:    %d ms\n", ns.LatencyMs)
		return nil
	},
}

var financialCmd = &cobra.Command{
	Use:   "financial",
	Short: "Show the provider's earnings summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connectBridge()
		if err != nil {
			return err
		}

		var fs models.FinancialSummary
		if err := client.get("/financial", &fs); err != nil {
			return err
		}

		fmt.Printf("Balance:        %.2f\n", fs.CurrentBalance)
		fmt.Printf("Total earned:   %.2f\n", fs.TotalEarned)
		fmt.Printf("Pending payout: %.2f\n", fs.PendingPayout)
		if fs.LastPayoutAt != nil {
			fmt.Printf("Last payout:    %s\n", *fs.LastPayoutAt)
		}
		return nil
	},
}

var systemCmd = &cobra.Command{
	Use:   "system",
	Short: "Show host-level resource usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connectBridge()
		if err != nil {
			return err
		}

		var so models.SystemOverview
		if err := client.get("/system", &so); err != nil {
			return err
		}

		fmt.Printf("CPU:    %.1f%%\n", so.CPUUsagePercent)
		fmt.Printf("RAM:    %.1f%%\n", so.RAMUsagePercent)
		fmt.Printf("Disk:   %d GB free of %d GB\n", so.FreeDiskSpaceGB, so.TotalDiskSpaceGB)
		fmt.Printf("Uptime: %s\n", (time.Duration(so.UptimeSeconds) * time.Second).String())
		return nil
	},
}
