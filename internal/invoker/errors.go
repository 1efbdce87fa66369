package invoker

import (
	"fmt"
	"strings"
)

// SpawnError means the worker executable could not be launched at all
// (missing binary, permissions, misconfiguration).
type SpawnError struct {
	Args []string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to execute worker command %v: %v", e.Args, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExitError means a one-shot invocation ran but exited non-zero. Captured
// stdout and stderr are carried verbatim for the UI to display.
type ExitError struct {
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("worker command %v failed with status %d: stderr: %q, stdout: %q",
		e.Args, e.ExitCode, strings.TrimSpace(e.Stderr), strings.TrimSpace(e.Stdout))
}

// ParseError means the worker exited cleanly but its stdout did not
// deserialize as the expected payload schema.
type ParseError struct {
	Args   []string
	Stdout string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse JSON from worker for %v: %v. Output: %q", e.Args, e.Err, e.Stdout)
}

func (e *ParseError) Unwrap() error { return e.Err }
