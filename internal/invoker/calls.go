package invoker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gpuhost-io/gpuhost/internal/models"
)

// Typed call sites over Invoke. Each is a thin schema binding: argument
// construction plus result typing, nothing more.

// DetectedGPUs fetches the worker's GPU inventory.
func (inv *Invoker) DetectedGPUs(ctx context.Context) ([]models.GpuInfo, error) {
	return invokeJSON[[]models.GpuInfo](ctx, inv, "--get-gpus-json")
}

// ProviderSettings fetches the worker's rental settings.
func (inv *Invoker) ProviderSettings(ctx context.Context) (models.ProviderSettings, error) {
	return invokeJSON[models.ProviderSettings](ctx, inv, "--get-settings-json")
}

// UpdateProviderSettings persists new rental settings; the worker echoes
// back the confirmed settings.
func (inv *Invoker) UpdateProviderSettings(ctx context.Context, settings models.ProviderSettings) (models.ProviderSettings, error) {
	payload, err := json.Marshal(settings)
	if err != nil {
		return models.ProviderSettings{}, fmt.Errorf("serialize settings: %w", err)
	}
	return invokeJSON[models.ProviderSettings](ctx, inv, "--update-settings-json", string(payload))
}

// SetGPURentalConfig updates one GPU's rental rate and availability; the
// worker echoes back the updated GPU record.
func (inv *Invoker) SetGPURentalConfig(ctx context.Context, gpuID string, hourlyRate float64, available bool) (models.GpuInfo, error) {
	return invokeJSON[models.GpuInfo](ctx, inv,
		"--set-gpu-config-json",
		"--gpu-id", gpuID,
		"--rate", strconv.FormatFloat(hourlyRate, 'f', -1, 64),
		"--available", strconv.FormatBool(available),
	)
}

// LocalJobs fetches the jobs currently queued or running on this provider.
func (inv *Invoker) LocalJobs(ctx context.Context) ([]models.LocalJob, error) {
	return invokeJSON[[]models.LocalJob](ctx, inv, "--get-local-jobs-json")
}

// NetworkStatus fetches the worker's network connectivity snapshot.
func (inv *Invoker) NetworkStatus(ctx context.Context) (models.NetworkStatus, error) {
	return invokeJSON[models.NetworkStatus](ctx, inv, "--get-network-status-json")
}

// FinancialSummary fetches the provider's earnings snapshot.
func (inv *Invoker) FinancialSummary(ctx context.Context) (models.FinancialSummary, error) {
	return invokeJSON[models.FinancialSummary](ctx, inv, "--get-financial-summary-json")
}

// SystemOverview fetches host-level CPU/RAM/disk/uptime metrics.
func (inv *Invoker) SystemOverview(ctx context.Context) (models.SystemOverview, error) {
	return invokeJSON[models.SystemOverview](ctx, inv, "--get-system-overview-json")
}
