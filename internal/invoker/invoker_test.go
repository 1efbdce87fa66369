package invoker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gpuhost-io/gpuhost/internal/logsink"
	"github.com/gpuhost-io/gpuhost/internal/models"
)

// fakeWorker drops an executable shell script into a temp dir and returns
// its path.
func fakeWorker(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "providerd")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write fake worker: %v", err)
	}
	return path
}

func TestDetectedGPUsEmptyInventory(t *testing.T) {
	inv := New(logsink.New(), fakeWorker(t, `echo '[]'`))

	gpus, err := inv.DetectedGPUs(context.Background())
	if err != nil {
		t.Fatalf("DetectedGPUs() error: %v", err)
	}
	if len(gpus) != 0 {
		t.Errorf("got %d GPUs, want 0", len(gpus))
	}
}

func TestDetectedGPUsParsesPayload(t *testing.T) {
	inv := New(logsink.New(), fakeWorker(t, `cat <<'EOF'
[{"id":"gpu-0","name":"RTX 4090","model":"NVIDIA GeForce RTX 4090","vram_total_mb":24576,"vram_free_mb":20480,"is_available_for_rent":true,"current_hourly_rate":0.5}]
EOF`))

	gpus, err := inv.DetectedGPUs(context.Background())
	if err != nil {
		t.Fatalf("DetectedGPUs() error: %v", err)
	}
	if len(gpus) != 1 {
		t.Fatalf("got %d GPUs, want 1", len(gpus))
	}

	g := gpus[0]
	if g.ID != "gpu-0" || g.Name != "RTX 4090" || g.VRAMTotalMB != 24576 {
		t.Errorf("unexpected GPU record: %+v", g)
	}
	if !g.IsAvailableForRent || g.CurrentHourlyRate == nil || *g.CurrentHourlyRate != 0.5 {
		t.Errorf("rental fields wrong: %+v", g)
	}
}

func TestExitErrorCarriesStderrVerbatim(t *testing.T) {
	inv := New(logsink.New(), fakeWorker(t, `echo 'config not found' >&2
exit 2`))

	_, err := inv.DetectedGPUs(context.Background())

	var xerr *ExitError
	if !errors.As(err, &xerr) {
		t.Fatalf("error is %T, want *ExitError", err)
	}
	if xerr.ExitCode != 2 {
		t.Errorf("ExitCode = %d, want 2", xerr.ExitCode)
	}
	if !strings.Contains(xerr.Stderr, "config not found") {
		t.Errorf("Stderr = %q, want it to carry the worker's message", xerr.Stderr)
	}
}

func TestParseErrorPreservesRawOutput(t *testing.T) {
	inv := New(logsink.New(), fakeWorker(t, `echo 'not json at all'`))

	_, err := inv.NetworkStatus(context.Background())

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error is %T, want *ParseError", err)
	}
	if !strings.Contains(perr.Stdout, "not json at all") {
		t.Errorf("Stdout = %q, want the raw worker output", perr.Stdout)
	}
}

func TestSpawnErrorForMissingBinary(t *testing.T) {
	inv := New(logsink.New(), filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := inv.DetectedGPUs(context.Background())

	var serr *SpawnError
	if !errors.As(err, &serr) {
		t.Fatalf("error is %T, want *SpawnError", err)
	}
}

func TestSetGPURentalConfigArguments(t *testing.T) {
	// The fake worker records its argv and echoes back a GPU payload, so
	// the test can assert the exact flag encoding.
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args")
	path := filepath.Join(dir, "providerd")
	script := "#!/bin/sh\necho \"$@\" > " + argsFile + "\necho '{\"id\":\"gpu-1\",\"name\":\"A\",\"model\":\"A\",\"vram_total_mb\":1,\"vram_free_mb\":1,\"is_available_for_rent\":false}'\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake worker: %v", err)
	}

	inv := New(logsink.New(), path)
	gpu, err := inv.SetGPURentalConfig(context.Background(), "gpu-1", 0.75, false)
	if err != nil {
		t.Fatalf("SetGPURentalConfig() error: %v", err)
	}
	if gpu.ID != "gpu-1" {
		t.Errorf("gpu.ID = %q, want gpu-1", gpu.ID)
	}

	raw, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("read args file: %v", err)
	}
	want := "--set-gpu-config-json --gpu-id gpu-1 --rate 0.75 --available false"
	if got := strings.TrimSpace(string(raw)); got != want {
		t.Errorf("worker argv = %q, want %q", got, want)
	}
}

func TestInvocationsLeaveAuditTrail(t *testing.T) {
	sink := logsink.New()
	sub := sink.Subscribe("t")
	defer sink.Unsubscribe("t")

	inv := New(sink, fakeWorker(t, `echo '[]'`))
	if _, err := inv.DetectedGPUs(context.Background()); err != nil {
		t.Fatalf("DetectedGPUs() error: %v", err)
	}

	// First record announces the invocation, second carries the response.
	first := <-sub
	if first.Category != models.LogStatus || !strings.Contains(first.Message, "--get-gpus-json") {
		t.Errorf("first record = %+v, want status record naming the call", first)
	}
	second := <-sub
	if second.Category != models.LogStdout {
		t.Errorf("second record category = %q, want %q", second.Category, models.LogStdout)
	}
}

func TestFailedInvocationLeavesErrorRecord(t *testing.T) {
	sink := logsink.New()
	sub := sink.Subscribe("t")
	defer sink.Unsubscribe("t")

	inv := New(sink, fakeWorker(t, `exit 1`))
	if _, err := inv.DetectedGPUs(context.Background()); err == nil {
		t.Fatal("expected error from failing worker")
	}

	<-sub // invocation announcement
	rec := <-sub
	if rec.Category != models.LogError {
		t.Errorf("record category = %q, want %q", rec.Category, models.LogError)
	}
}
