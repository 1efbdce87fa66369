package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/gpuhost-io/gpuhost/internal/models"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Follow the worker's activity feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connectBridge()
		if err != nil {
			return err
		}

		ws, _, err := websocket.DefaultDialer.Dial(client.wsURL(), nil)
		if err != nil {
			return fmt.Errorf("failed to connect to log stream: %w", err)
		}
		defer ws.Close()

		// Close the socket on Ctrl-C so ReadJSON unblocks.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigCh
			_ = ws.Close()
		}()

		for {
			var ev struct {
				Event  string            `json:"event"`
				Status string            `json:"status,omitempty"`
				Record *models.LogRecord `json:"record,omitempty"`
			}
			if err := ws.ReadJSON(&ev); err != nil {
				return nil
			}

			switch ev.Event {
			case "ready":
				fmt.Printf("connected — worker is %s\n", ev.Status)
			case "daemon_log":
				if ev.Record != nil {
					fmt.Printf("%s [%d] %-6s %s\n",
						ev.Record.Timestamp, ev.Record.ID, ev.Record.Category, ev.Record.Message)
				}
			}
		}
	},
}
