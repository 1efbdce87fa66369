// Package main is the entry point for the gpuhostd shell daemon.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/gpuhost-io/gpuhost/internal/bridge"
	"github.com/gpuhost-io/gpuhost/internal/config"
	"github.com/gpuhost-io/gpuhost/internal/invoker"
	"github.com/gpuhost-io/gpuhost/internal/logsink"
	"github.com/gpuhost-io/gpuhost/internal/models"
	"github.com/gpuhost-io/gpuhost/internal/supervisor"
	"github.com/gpuhost-io/gpuhost/internal/tray"
)

func main() {
	foreground := flag.Bool("foreground", false, "Run in foreground (for development)")
	port := flag.Int("port", -1, "Bridge port (-1 uses settings, 0 for dynamic allocation)")
	flag.Parse()

	log.SetPrefix("[gpuhostd] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := config.EnsureGlobalDir(); err != nil {
		log.Fatalf("Failed to create global directory: %v", err)
	}

	running, info, err := config.IsBridgeRunning()
	if err != nil {
		log.Fatalf("Failed to check bridge status: %v", err)
	}
	if running {
		log.Fatalf("gpuhostd already running on port %d (PID %d)", info.Port, info.PID)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if *port < 0 {
		*port = settings.Bridge.Port
	}

	app, err := newApp(settings, *port)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	if *foreground {
		log.Println("Running in foreground mode (no system tray)")
		app.runForeground()
	} else {
		log.Println("Running in background mode (with system tray)")
		app.runWithTray()
	}
}

// app wires the sink, supervisor, invoker, and bridge together.
type app struct {
	sink *logsink.Sink
	sup  *supervisor.Supervisor
	srv  *bridge.Server
}

func newApp(settings *models.Settings, port int) (*app, error) {
	sink := logsink.New()

	workerPath, err := config.ResolveWorkerPath(settings)
	if err != nil {
		// Run degraded: the supervisor and invoker will surface spawn
		// failures when the user actually tries to use the worker.
		log.Printf("Warning: %v", err)
		workerPath = config.WorkerBinaryName
	}

	sup := supervisor.New(sink, supervisor.Options{
		WorkerPath:  workerPath,
		WorkerArgs:  config.WorkerDaemonArgs(settings),
		StopTimeout: time.Duration(settings.StopTimeoutSeconds) * time.Second,
	})
	inv := invoker.New(sink, workerPath)

	srv, err := bridge.New(settings.Bridge.Host, port, sup, inv, sink)
	if err != nil {
		return nil, err
	}

	return &app{sink: sink, sup: sup, srv: srv}, nil
}

// start publishes bridge info, starts the settings watcher, and begins
// serving. Returns a channel that receives a fatal server error.
func (a *app) start() (<-chan error, error) {
	bridgeInfo := models.NewBridgeInfo("127.0.0.1", a.srv.Port(), os.Getpid())
	if err := config.SaveBridgeInfo(bridgeInfo); err != nil {
		return nil, fmt.Errorf("failed to write bridge info: %w", err)
	}

	if err := a.srv.StartSettingsWatcher(); err != nil {
		log.Printf("Warning: settings watcher not started: %v", err)
	}

	a.sink.Emit(models.LogStatus, "Provider shell initialized. Worker is OFFLINE.")
	log.Printf("Bridge started on port %d (PID %d)", a.srv.Port(), os.Getpid())

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.srv.Serve()
	}()
	return errCh, nil
}

// shutdown tears everything down: worker first, then the bridge.
func (a *app) shutdown() {
	a.sup.Shutdown()
	a.srv.Stop()

	if err := config.RemoveBridgeInfo(); err != nil {
		log.Printf("Failed to remove bridge info: %v", err)
	}

	fmt.Println("gpuhostd stopped")
}

// runForeground runs without a system tray, blocking on signals.
func (a *app) runForeground() {
	errCh, err := a.start()
	if err != nil {
		log.Fatalf("%v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal %v, shutting down...", sig)
	case err := <-errCh:
		log.Printf("Bridge error: %v", err)
	}

	a.shutdown()
}

// runWithTray runs with a system tray icon on the main goroutine.
// systray.Run must occupy the main goroutine on macOS (Cocoa requirement).
func (a *app) runWithTray() {
	onStart := func() {
		errCh, err := a.start()
		if err != nil {
			log.Fatalf("%v", err)
		}

		go func() {
			if err := <-errCh; err != nil {
				log.Printf("Bridge error: %v", err)
				tray.Quit()
			}
		}()

		// Keep the tray's status line in sync with the supervisor by
		// following the log stream.
		go a.followStatus()

		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			log.Printf("Received signal %v, shutting down...", sig)
			tray.Quit()
		}()
	}

	tray.Run(&shellState{app: a}, onStart, a.shutdown)
}

// followStatus refreshes the tray whenever a status-bearing record lands.
func (a *app) followStatus() {
	subID := uuid.NewString()
	records := a.sink.Subscribe(subID)
	defer a.sink.Unsubscribe(subID)

	for rec := range records {
		if rec.Category == models.LogStatus || rec.Category == models.LogError {
			tray.UpdateStatus(a.sup.Status())
		}
	}
}

// shellState adapts the app to the tray.ShellState interface.
type shellState struct {
	app *app
}

func (s *shellState) Port() int {
	return s.app.srv.Port()
}

func (s *shellState) WorkerStatus() models.DaemonStatus {
	return s.app.sup.Status()
}

func (s *shellState) StartWorker() {
	if _, err := s.app.sup.Start(); err != nil {
		log.Printf("Tray start failed: %v", err)
	}
}

func (s *shellState) StopWorker() {
	if _, err := s.app.sup.Stop(); err != nil {
		log.Printf("Tray stop failed: %v", err)
	}
}

func (s *shellState) RequestShutdown() {
	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		return
	}
	_ = p.Signal(syscall.SIGINT)
}
