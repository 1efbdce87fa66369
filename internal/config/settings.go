package config

import "github.com/gpuhost-io/gpuhost/internal/models"

// LoadSettings loads shell settings from ~/.gpuhost/settings.yaml,
// returning defaults if the file doesn't exist.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	return LoadYAMLOrDefault(path, models.NewSettings)
}

// SaveSettings saves shell settings to ~/.gpuhost/settings.yaml.
func SaveSettings(settings *models.Settings) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}

	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}
