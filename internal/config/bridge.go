package config

import (
	"os"
	"syscall"

	"github.com/gpuhost-io/gpuhost/internal/models"
)

// LoadBridgeInfo loads the bridge connection info from
// ~/.gpuhost/bridge.yaml. Returns nil if the file doesn't exist.
func LoadBridgeInfo() (*models.BridgeInfo, error) {
	path, err := GlobalBridgeFile()
	if err != nil {
		return nil, err
	}

	if !FileExists(path) {
		return nil, nil
	}

	var info models.BridgeInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveBridgeInfo saves the bridge connection info to ~/.gpuhost/bridge.yaml.
func SaveBridgeInfo(info *models.BridgeInfo) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}

	path, err := GlobalBridgeFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveBridgeInfo removes the bridge.yaml file.
func RemoveBridgeInfo() error {
	path, err := GlobalBridgeFile()
	if err != nil {
		return err
	}

	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}

// IsBridgeRunning checks if a gpuhostd process is still running.
// Returns true if bridge.yaml exists and the PID is alive.
func IsBridgeRunning() (bool, *models.BridgeInfo, error) {
	info, err := LoadBridgeInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}

	process, err := os.FindProcess(info.PID)
	if err != nil {
		// On Unix, FindProcess always succeeds
		return false, info, nil
	}

	// Signal 0 probes for process existence without delivering anything
	if err := process.Signal(syscall.Signal(0)); err != nil {
		// Process is gone, clean up the stale file
		_ = RemoveBridgeInfo()
		return false, info, nil
	}

	return true, info, nil
}
