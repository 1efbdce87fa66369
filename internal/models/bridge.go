package models

import "time"

// BridgeInfo describes a running gpuhostd bridge so that the CLI and the
// GUI can find it. This corresponds to ~/.gpuhost/bridge.yaml.
type BridgeInfo struct {
	Version   int       `yaml:"version"`
	Host      string    `yaml:"host"`
	Port      int       `yaml:"port"`
	PID       int       `yaml:"pid"`
	StartedAt time.Time `yaml:"started_at"`
}

// NewBridgeInfo creates bridge info with current values.
func NewBridgeInfo(host string, port, pid int) *BridgeInfo {
	return &BridgeInfo{
		Version:   1,
		Host:      host,
		Port:      port,
		PID:       pid,
		StartedAt: time.Now().UTC(),
	}
}
