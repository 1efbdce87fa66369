// Package supervisor starts, monitors, and stops the long-running provider
// worker process, and maintains the authoritative view of its status.
package supervisor

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gpuhost-io/gpuhost/internal/logsink"
	"github.com/gpuhost-io/gpuhost/internal/models"
)

// Options configures a Supervisor.
type Options struct {
	WorkerPath  string        // provider worker binary
	WorkerArgs  []string      // daemon-mode arguments (e.g. --config path)
	StopTimeout time.Duration // grace period after SIGTERM before SIGKILL
}

// DefaultStopTimeout is used when Options.StopTimeout is zero.
const DefaultStopTimeout = 10 * time.Second

// Supervisor owns the worker status state machine and the current process
// handle. Status and handle are the only shared mutable state; the mutex
// is never held across a spawn, a signal send, or a wait.
type Supervisor struct {
	mu     sync.Mutex
	status models.DaemonStatus
	handle *Handle

	sink *logsink.Sink
	opts Options
}

// New creates a supervisor in the offline state.
func New(sink *logsink.Sink, opts Options) *Supervisor {
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = DefaultStopTimeout
	}
	return &Supervisor{
		status: models.DaemonOffline,
		sink:   sink,
		opts:   opts,
	}
}

// Status returns a snapshot of the current worker status. Non-blocking.
func (s *Supervisor) Status() models.DaemonStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Start spawns the worker in daemon mode. It returns as soon as the spawn
// succeeds; "online" is asserted optimistically and callers learn true
// readiness from the log stream, not from this return.
//
// Calling Start while the worker is already starting or online is an
// informational no-op.
func (s *Supervisor) Start() (models.DaemonStatus, error) {
	s.mu.Lock()
	if s.status == models.DaemonStarting || s.status == models.DaemonOnline {
		status := s.status
		s.mu.Unlock()
		s.sink.Emit(models.LogStatus, "Worker is already online or starting.")
		return status, nil
	}
	s.status = models.DaemonStarting
	s.mu.Unlock()

	s.sink.Emit(models.LogStatus, "Attempting to start provider worker...")

	h, err := spawn(s.opts.WorkerPath, s.opts.WorkerArgs...)
	if err != nil {
		s.mu.Lock()
		s.status = models.DaemonError
		s.mu.Unlock()
		s.sink.Emit(models.LogError, fmt.Sprintf("Failed to spawn provider worker: %v", err))
		return models.DaemonError, fmt.Errorf("spawn worker: %w", err)
	}

	// Commit: exactly one handle may be active. If a previous handle is
	// still around (e.g. retry out of error while the old process lingers),
	// kill it after swapping it out; its pump will see a stale token and
	// leave the new state alone.
	s.mu.Lock()
	old := s.handle
	s.handle = h
	s.status = models.DaemonOnline
	s.mu.Unlock()

	if old != nil {
		log.Printf("[supervisor] replacing lingering worker pid %d", old.PID())
		_ = old.Kill()
	}

	s.sink.Emit(models.LogStatus, fmt.Sprintf("Worker process started successfully (pid %d).", h.PID()))

	go s.pump(h.Token(), h.Events())

	return models.DaemonOnline, nil
}

// Stop requests termination of the running worker. It returns once the
// signal is sent; the transition to offline happens when the event pump
// observes the Terminated event. A watchdog force-kills the process if it
// ignores SIGTERM past the configured stop timeout.
//
// Calling Stop while the worker is already offline or stopping is an
// informational no-op.
func (s *Supervisor) Stop() (models.DaemonStatus, error) {
	s.mu.Lock()
	if s.status == models.DaemonOffline || s.status == models.DaemonStopping {
		status := s.status
		s.mu.Unlock()
		s.sink.Emit(models.LogStatus, "Worker is already offline or stopping.")
		return status, nil
	}

	if s.handle == nil {
		// Status said otherwise, but there is nothing to stop. Self-heal.
		s.status = models.DaemonOffline
		s.mu.Unlock()
		s.sink.Emit(models.LogStatus, "No active worker process found to stop.")
		return models.DaemonOffline, nil
	}

	s.status = models.DaemonStopping
	h := s.handle
	s.mu.Unlock()

	s.sink.Emit(models.LogStatus, "Attempting to stop provider worker...")

	if err := h.Signal(); err != nil {
		s.mu.Lock()
		s.status = models.DaemonError
		if s.handle == h {
			s.handle = nil
		}
		s.mu.Unlock()
		s.sink.Emit(models.LogError, fmt.Sprintf("Failed to send termination signal to worker: %v", err))
		return models.DaemonError, fmt.Errorf("signal worker: %w", err)
	}

	s.sink.Emit(models.LogStatus, "Worker termination signal sent.")

	go s.enforceStopTimeout(h)

	return models.DaemonStopping, nil
}

// enforceStopTimeout force-kills a worker that ignores SIGTERM. Scoped to
// one handle: if a newer start has replaced it, the watchdog stands down.
func (s *Supervisor) enforceStopTimeout(h *Handle) {
	select {
	case <-h.Done():
		return
	case <-time.After(s.opts.StopTimeout):
	}

	s.mu.Lock()
	current := s.handle == h
	s.mu.Unlock()
	if !current {
		return
	}

	s.sink.Emit(models.LogStatus, fmt.Sprintf("Worker did not exit within %s; killing.", s.opts.StopTimeout))
	_ = h.Kill()
}

// Shutdown terminates any live worker at application exit. Best effort:
// SIGTERM, a short grace period, then SIGKILL.
func (s *Supervisor) Shutdown() {
	s.mu.Lock()
	h := s.handle
	s.handle = nil
	s.status = models.DaemonOffline
	s.mu.Unlock()

	if h == nil {
		return
	}

	log.Printf("[supervisor] shutting down worker pid %d", h.PID())
	_ = h.Signal()
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		_ = h.Kill()
		<-h.Done()
	}
}
