package models

// LogCategory classifies a log record for display in the GUI.
type LogCategory string

// Log categories.
const (
	LogStatus LogCategory = "status"
	LogStdout LogCategory = "stdout"
	LogStderr LogCategory = "stderr"
	LogError  LogCategory = "error"
)

// LogRecord is a single entry in the worker activity feed. Records are
// immutable once created; IDs start at 1 and are strictly increasing for
// the lifetime of the shell process, and ID order is the authoritative
// display order.
type LogRecord struct {
	ID        uint64      `json:"id"`
	Message   string      `json:"message"`
	Timestamp string      `json:"timestamp"` // RFC3339
	Category  LogCategory `json:"category"`
}
