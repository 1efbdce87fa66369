package bridge

import (
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gpuhost-io/gpuhost/internal/config"
	"github.com/gpuhost-io/gpuhost/internal/logsink"
	"github.com/gpuhost-io/gpuhost/internal/models"
)

// debounceWindow collapses editor write bursts into a single notification.
const debounceWindow = 500 * time.Millisecond

// SettingsWatcher watches ~/.gpuhost/settings.yaml and publishes a status
// log record when it changes, so connected GUIs reload their forms.
type SettingsWatcher struct {
	fsWatcher *fsnotify.Watcher
	sink      *logsink.Sink
	done      chan struct{}
}

// NewSettingsWatcher creates a watcher. Call Start to begin watching.
func NewSettingsWatcher(sink *logsink.Sink) (*SettingsWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &SettingsWatcher{
		fsWatcher: fsWatcher,
		sink:      sink,
		done:      make(chan struct{}),
	}, nil
}

// Start watches the global config directory and begins processing events.
func (w *SettingsWatcher) Start() error {
	dir, err := config.GlobalDir()
	if err != nil {
		return err
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}

	go w.processEvents()
	return nil
}

// Close stops the watcher.
func (w *SettingsWatcher) Close() {
	close(w.done)
	_ = w.fsWatcher.Close()
}

func (w *SettingsWatcher) processEvents() {
	var timer *time.Timer

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != config.SettingsFileName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				w.sink.Emit(models.LogStatus, "Shell settings changed on disk.")
			})

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[bridge] settings watcher error: %v", err)
		}
	}
}
