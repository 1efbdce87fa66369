// Package tray implements the system tray icon and menu for the shell.
package tray

import "github.com/gpuhost-io/gpuhost/internal/models"

// ShellState provides the tray menu with access to shell state and
// supervisor commands.
type ShellState interface {
	Port() int
	WorkerStatus() models.DaemonStatus
	StartWorker()
	StopWorker()
	RequestShutdown()
}
