// Package invoker runs one-shot invocations of the provider worker and
// parses their JSON output.
package invoker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gpuhost-io/gpuhost/internal/logsink"
	"github.com/gpuhost-io/gpuhost/internal/models"
)

// Invoker spawns short-lived worker processes, distinct from the
// supervised long-running daemon, to answer structured queries. Every
// invocation leaves an audit trail in the log sink regardless of outcome.
type Invoker struct {
	sink       *logsink.Sink
	workerPath string
}

// New creates an invoker for the given worker binary.
func New(sink *logsink.Sink, workerPath string) *Invoker {
	return &Invoker{sink: sink, workerPath: workerPath}
}

// Invoke runs the worker with the given arguments, waits for it to exit,
// and returns its raw stdout on a clean exit. Failures are typed:
// SpawnError, ExitError, or (from the JSON helpers) ParseError.
func (inv *Invoker) Invoke(ctx context.Context, args ...string) ([]byte, error) {
	inv.sink.Emit(models.LogStatus, fmt.Sprintf("Invoking worker: %s %s",
		filepath.Base(inv.workerPath), strings.Join(args, " ")))

	cmd := exec.CommandContext(ctx, inv.workerPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			xerr := &ExitError{
				Args:     args,
				ExitCode: ee.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
			}
			inv.sink.Emit(models.LogError, xerr.Error())
			return nil, xerr
		}
		serr := &SpawnError{Args: args, Err: err}
		inv.sink.Emit(models.LogError, serr.Error())
		return nil, serr
	}

	inv.sink.Emit(models.LogStdout, fmt.Sprintf("Worker response for %v: %s",
		args, strings.TrimSpace(stdout.String())))
	return stdout.Bytes(), nil
}

// invokeJSON runs a one-shot invocation and decodes stdout into T.
func invokeJSON[T any](ctx context.Context, inv *Invoker, args ...string) (T, error) {
	var out T

	raw, err := inv.Invoke(ctx, args...)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		perr := &ParseError{Args: args, Stdout: string(raw), Err: err}
		inv.sink.Emit(models.LogError, perr.Error())
		return out, perr
	}
	return out, nil
}
