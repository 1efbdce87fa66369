// Package models defines the data types shared across gpuhost packages.
package models

// DaemonStatus is the supervisor's view of the worker daemon process.
// Exactly one value is current at any instant.
type DaemonStatus string

// Worker daemon states.
const (
	DaemonOffline  DaemonStatus = "offline"
	DaemonStarting DaemonStatus = "starting"
	DaemonOnline   DaemonStatus = "online"
	DaemonStopping DaemonStatus = "stopping"
	DaemonError    DaemonStatus = "error"
)
