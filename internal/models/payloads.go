package models

// The structs below mirror the JSON payloads printed by the provider
// worker's one-shot CLI mode. The shell validates them only by
// deserialization; business rules live in the worker.

// GpuInfo describes one GPU the worker detected on this machine.
type GpuInfo struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Model                 string   `json:"model"`
	VRAMTotalMB           uint32   `json:"vram_total_mb"`
	VRAMFreeMB            uint32   `json:"vram_free_mb"`
	UtilizationGPUPercent *uint32  `json:"utilization_gpu_percent,omitempty"`
	TemperatureC          *uint32  `json:"temperature_c,omitempty"`
	PowerDrawW            *uint32  `json:"power_draw_w,omitempty"`
	IsAvailableForRent    bool     `json:"is_available_for_rent"`
	CurrentHourlyRate     *float64 `json:"current_hourly_rate,omitempty"`
}

// ProviderSettings is the worker's rental configuration.
type ProviderSettings struct {
	DefaultHourlyRate     float64 `json:"default_hourly_rate"`
	PreferredCurrency     string  `json:"preferred_currency"`
	MinJobDurationMinutes uint32  `json:"min_job_duration_minutes"`
	MaxConcurrentJobs     uint32  `json:"max_concurrent_jobs"`
}

// JobStatus enumerates the lifecycle states of a local rental job.
type JobStatus string

// Job states.
const (
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
	JobQueued    JobStatus = "queued"
)

// LocalJob describes a rental job executing (or queued) on this provider.
type LocalJob struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Status          JobStatus `json:"status"`
	ProgressPercent float64   `json:"progress_percent"`
	SubmittedAt     string    `json:"submitted_at"`
	StartedAt       *string   `json:"started_at,omitempty"`
	CompletedAt     *string   `json:"completed_at,omitempty"`
	EstimatedCost   *float64  `json:"estimated_cost,omitempty"`
}

// NetworkStatus describes the worker's view of its network connectivity.
type NetworkStatus struct {
	ConnectionType    string  `json:"connection_type"` // "Ethernet", "WiFi", "Disconnected"
	IPAddress         *string `json:"ip_address,omitempty"`
	UploadSpeedMbps   float64 `json:"upload_speed_mbps"`
	DownloadSpeedMbps float64 `json:"download_speed_mbps"`
	LatencyMs         uint32  `json:"latency_ms"`
}

// FinancialSummary is the provider's earnings snapshot.
type FinancialSummary struct {
	CurrentBalance float64 `json:"current_balance"`
	TotalEarned    float64 `json:"total_earned"`
	PendingPayout  float64 `json:"pending_payout"`
	LastPayoutAt   *string `json:"last_payout_at,omitempty"`
}

// SystemOverview is a host-level resource snapshot reported by the worker.
type SystemOverview struct {
	TotalDiskSpaceGB uint64  `json:"total_disk_space_gb"`
	FreeDiskSpaceGB  uint64  `json:"free_disk_space_gb"`
	CPUUsagePercent  float64 `json:"cpu_usage_percent"`
	RAMUsagePercent  float64 `json:"ram_usage_percent"`
	UptimeSeconds    uint64  `json:"uptime_seconds"`
}
