package supervisor

import "fmt"

// EventKind discriminates the items in a spawned worker's event stream.
type EventKind int

// Event kinds.
const (
	EventOutputLine EventKind = iota
	EventExecutionError
	EventTerminated
)

// ExitInfo describes how a worker process exited. Code is nil when the
// process was killed by a signal rather than exiting on its own.
type ExitInfo struct {
	Code   *int
	Signal string
}

// Event is one item in a spawned worker's event stream. The stream is
// ordered; Terminated is always the final event before the channel closes.
type Event struct {
	Kind   EventKind
	Line   string    // OutputLine text, or ExecutionError detail
	Stderr bool      // OutputLine only: true when the line came from stderr
	Exit   *ExitInfo // Terminated only
}

// String renders a human-readable termination summary, mirroring what the
// GUI shows in the activity feed.
func (e *ExitInfo) String() string {
	if e == nil {
		return "unknown"
	}
	if e.Code == nil {
		if e.Signal != "" {
			return fmt.Sprintf("killed by signal, signal: %s", e.Signal)
		}
		return "killed by signal"
	}
	return fmt.Sprintf("%d", *e.Code)
}
