package supervisor

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"syscall"

	"github.com/google/uuid"
)

// Handle owns exactly one spawned worker process: its pipes, its event
// stream, and its termination signal. Ownership is exclusive; the
// supervisor never shares a handle between process instances.
type Handle struct {
	token  string // unique instance identity, checked before mutating shared state
	cmd    *exec.Cmd
	events chan Event
	done   chan struct{}
}

// spawn starts the worker and wires its stdout/stderr into the handle's
// event stream. Two reader goroutines forward lines; a waiter goroutine
// reaps the process and emits the final Terminated event, then closes the
// stream.
func spawn(path string, args ...string) (*Handle, error) {
	cmd := exec.Command(path, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to spawn %s: %w", path, err)
	}

	h := &Handle{
		token:  uuid.NewString(),
		cmd:    cmd,
		events: make(chan Event, 256),
		done:   make(chan struct{}),
	}

	var readers sync.WaitGroup
	readers.Add(2)
	go h.readLines(stdout, false, &readers)
	go h.readLines(stderr, true, &readers)
	go h.reap(&readers)

	return h, nil
}

// readLines forwards each line from r as an OutputLine event. A read
// failure other than pipe closure becomes an ExecutionError event.
func (h *Handle) readLines(r io.Reader, isStderr bool, wg *sync.WaitGroup) {
	defer wg.Done()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		h.events <- Event{Kind: EventOutputLine, Line: sc.Text(), Stderr: isStderr}
	}
	if err := sc.Err(); err != nil {
		h.events <- Event{Kind: EventExecutionError, Line: err.Error()}
	}
}

// reap waits for both readers to drain, reaps the process, and emits the
// terminal event. The event channel is closed afterwards so consumers see
// a finite stream.
func (h *Handle) reap(readers *sync.WaitGroup) {
	readers.Wait()
	err := h.cmd.Wait()
	h.events <- Event{Kind: EventTerminated, Exit: exitInfoFromError(err)}
	close(h.events)
	close(h.done)
}

// exitInfoFromError converts cmd.Wait's result into ExitInfo. A signal
// death yields a nil exit code.
func exitInfoFromError(err error) *ExitInfo {
	if err == nil {
		code := 0
		return &ExitInfo{Code: &code}
	}

	if ee, ok := err.(*exec.ExitError); ok {
		if ws, ok := ee.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return &ExitInfo{Signal: ws.Signal().String()}
		}
		code := ee.ExitCode()
		return &ExitInfo{Code: &code}
	}

	// Wait failed for a reason other than a non-zero exit
	return &ExitInfo{}
}

// Token returns the handle's unique instance identity.
func (h *Handle) Token() string {
	return h.token
}

// Events returns the ordered event stream for this process instance.
func (h *Handle) Events() <-chan Event {
	return h.events
}

// Done returns a channel that is closed once the process has been reaped.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// PID returns the OS process ID.
func (h *Handle) PID() int {
	if h.cmd.Process == nil {
		return 0
	}
	return h.cmd.Process.Pid
}

// Signal sends SIGTERM to request a graceful shutdown.
func (h *Handle) Signal() error {
	if h.cmd.Process == nil {
		return fmt.Errorf("process not started")
	}
	return h.cmd.Process.Signal(syscall.SIGTERM)
}

// Kill forcibly terminates the process.
func (h *Handle) Kill() error {
	if h.cmd.Process == nil {
		return fmt.Errorf("process not started")
	}
	return h.cmd.Process.Kill()
}
