package config

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/gpuhost-io/gpuhost/internal/models"
)

// WorkerBinaryName is the name of the provider worker executable.
const WorkerBinaryName = "providerd"

// ResolveWorkerPath finds the provider worker binary.
// Check order: settings.yaml → exec.LookPath → platform-specific fallbacks.
func ResolveWorkerPath(settings *models.Settings) (string, error) {
	// 1. Explicit path from settings.yaml
	if settings != nil && settings.Worker.Path != "" {
		if _, err := os.Stat(settings.Worker.Path); err == nil {
			return settings.Worker.Path, nil
		}
		return "", fmt.Errorf("worker binary configured at %s but not found", settings.Worker.Path)
	}

	// 2. Try exec.LookPath
	if path, err := exec.LookPath(WorkerBinaryName); err == nil {
		return path, nil
	}

	// 3. Platform-specific fallbacks
	homeDir, _ := os.UserHomeDir()
	fallbacks := []string{
		homeDir + "/.gpuhost/bin/" + WorkerBinaryName,
	}

	if runtime.GOOS == "darwin" {
		fallbacks = append(fallbacks,
			"/opt/homebrew/bin/"+WorkerBinaryName,
			"/usr/local/bin/"+WorkerBinaryName,
		)
	}

	for _, p := range fallbacks {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%s binary not found. Install it or set worker.path in ~/.gpuhost/settings.yaml", WorkerBinaryName)
}

// WorkerDaemonArgs builds the argument list for running the worker in
// long-running daemon mode.
func WorkerDaemonArgs(settings *models.Settings) []string {
	if settings != nil && settings.Worker.ConfigPath != "" {
		return []string{"--config", settings.Worker.ConfigPath}
	}
	return nil
}
