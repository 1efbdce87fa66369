package tray

import (
	"fmt"

	"github.com/getlantern/systray"

	"github.com/gpuhost-io/gpuhost/internal/models"
)

var (
	state   ShellState
	onStart func()
	onExit  func()

	portItem   *systray.MenuItem
	statusItem *systray.MenuItem
	startItem  *systray.MenuItem
	stopItem   *systray.MenuItem
	quitItem   *systray.MenuItem
)

// Run starts the system tray. This blocks the calling goroutine (must be
// main — Cocoa requires the tray loop on the main thread).
// onStartFn is called when the tray is ready (launch the bridge here).
// onExitFn is called when the tray exits (cleanup here).
func Run(s ShellState, onStartFn, onExitFn func()) {
	state = s
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetTemplateIcon(iconData, iconData)
	systray.SetTooltip("GPU Host")

	header := systray.AddMenuItem("GPU Host", "")
	header.Disable()

	portItem = systray.AddMenuItem("Starting...", "")
	portItem.Disable()

	systray.AddSeparator()

	statusItem = systray.AddMenuItem(formatStatus(models.DaemonOffline), "")
	statusItem.Disable()
	startItem = systray.AddMenuItem("Start Worker", "Start the provider worker")
	stopItem = systray.AddMenuItem("Stop Worker", "Stop the provider worker")
	stopItem.Disable()

	systray.AddSeparator()

	quitItem = systray.AddMenuItem("Quit", "Shut down GPU Host")

	if onStart != nil {
		onStart()
	}

	if state != nil {
		portItem.SetTitle(fmt.Sprintf("Bridge on port: %d", state.Port()))
		UpdateStatus(state.WorkerStatus())
	}

	go handleClicks()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-startItem.ClickedCh:
			if state != nil {
				go state.StartWorker()
			}
		case <-stopItem.ClickedCh:
			if state != nil {
				go state.StopWorker()
			}
		case <-quitItem.ClickedCh:
			if state != nil {
				state.RequestShutdown()
			}
		}
	}
}

// UpdateStatus refreshes the status line and the enabled state of the
// start/stop items. Safe to call from any goroutine.
func UpdateStatus(status models.DaemonStatus) {
	if statusItem == nil {
		return
	}
	statusItem.SetTitle(formatStatus(status))

	switch status {
	case models.DaemonStarting, models.DaemonOnline:
		startItem.Disable()
		stopItem.Enable()
	case models.DaemonStopping:
		startItem.Disable()
		stopItem.Disable()
	default: // offline, error
		startItem.Enable()
		stopItem.Disable()
	}

	systray.SetTooltip(fmt.Sprintf("GPU Host (worker %s)", status))
}

func formatStatus(status models.DaemonStatus) string {
	switch status {
	case models.DaemonOffline:
		return "○ Worker: Offline"
	case models.DaemonStarting:
		return "◐ Worker: Starting"
	case models.DaemonOnline:
		return "● Worker: Online"
	case models.DaemonStopping:
		return "◐ Worker: Stopping"
	case models.DaemonError:
		return "✕ Worker: Error"
	default:
		return "Worker: Unknown"
	}
}
