package bridge

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gpuhost-io/gpuhost/internal/config"
	"github.com/gpuhost-io/gpuhost/internal/logsink"
	"github.com/gpuhost-io/gpuhost/internal/models"
)

func TestSettingsWatcherEmitsOnChange(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, config.EnsureGlobalDir())

	sink := logsink.New()
	sub := sink.Subscribe("t")
	defer sink.Unsubscribe("t")

	w, err := NewSettingsWatcher(sink)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Close()

	path, err := config.GlobalSettingsFile()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("version: \"1.0\"\n"), 0o644))

	select {
	case rec := <-sub:
		require.Equal(t, models.LogStatus, rec.Category)
		require.Equal(t, "Shell settings changed on disk.", rec.Message)
	case <-time.After(5 * time.Second):
		t.Fatal("no record after settings file change")
	}
}

func TestSettingsWatcherIgnoresOtherFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, config.EnsureGlobalDir())

	sink := logsink.New()
	sub := sink.Subscribe("t")
	defer sink.Unsubscribe("t")

	w, err := NewSettingsWatcher(sink)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Close()

	dir, err := config.GlobalDir()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bridge.yaml"), []byte("port: 1\n"), 0o644))

	select {
	case rec := <-sub:
		t.Fatalf("unexpected record for unrelated file: %+v", rec)
	case <-time.After(debounceWindow * 2):
	}
}
