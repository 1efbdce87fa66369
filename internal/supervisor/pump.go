package supervisor

import (
	"fmt"

	"github.com/gpuhost-io/gpuhost/internal/models"
)

// pump consumes one process instance's event stream and turns it into log
// records and status transitions. One pump runs per spawn; the instance
// token guards every mutation of shared state so a stale pump from a
// replaced process can never clobber a newer instance.
func (s *Supervisor) pump(token string, events <-chan Event) {
	for ev := range events {
		switch ev.Kind {
		case EventOutputLine:
			if ev.Stderr {
				s.sink.Emit(models.LogStderr, ev.Line)
			} else {
				s.sink.Emit(models.LogStdout, ev.Line)
			}

		case EventExecutionError:
			s.sink.Emit(models.LogError, "Worker execution error: "+ev.Line)
			s.mu.Lock()
			if s.handle != nil && s.handle.token == token {
				s.status = models.DaemonError
			}
			s.mu.Unlock()

		case EventTerminated:
			s.finish(token, ev.Exit)
			return
		}
	}

	// Stream closed without a Terminated event. If this instance still owns
	// the supervisor state and the worker was supposed to be up, force it
	// offline and flag the anomaly.
	s.mu.Lock()
	if s.handle != nil && s.handle.token == token &&
		(s.status == models.DaemonStarting || s.status == models.DaemonOnline) {
		s.status = models.DaemonOffline
		s.handle = nil
		s.mu.Unlock()
		s.sink.Emit(models.LogError, "Worker event stream ended unexpectedly. Marking as offline.")
		return
	}
	s.mu.Unlock()
}

// finish applies the exit-classification policy for a Terminated event.
// The policy is keyed on the status captured before this handler mutates
// anything: an intentional stop is offline regardless of exit code; any
// other non-clean exit is an error.
func (s *Supervisor) finish(token string, exit *ExitInfo) {
	s.sink.Emit(models.LogStatus, fmt.Sprintf("Worker terminated. Exit code: %s", exit.String()))

	s.mu.Lock()
	if s.handle == nil || s.handle.token != token {
		// A newer start() already replaced this instance.
		s.mu.Unlock()
		return
	}

	previous := s.status
	s.handle = nil

	switch {
	case previous == models.DaemonStopping:
		s.status = models.DaemonOffline
		s.mu.Unlock()
		s.sink.Emit(models.LogStatus, "Worker stopped as expected.")

	case exit == nil || exit.Code == nil:
		s.status = models.DaemonError
		s.mu.Unlock()
		s.sink.Emit(models.LogError, "Worker terminated unexpectedly (e.g. by signal).")

	case *exit.Code != 0:
		s.status = models.DaemonError
		s.mu.Unlock()
		s.sink.Emit(models.LogError, fmt.Sprintf("Worker exited with non-zero status: %d", *exit.Code))

	default:
		s.status = models.DaemonOffline
		s.mu.Unlock()
	}
}
