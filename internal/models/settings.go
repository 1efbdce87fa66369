package models

// WorkerConfig holds the location of the provider worker binary and its
// daemon-mode configuration file.
type WorkerConfig struct {
	Path       string `yaml:"path"`        // empty = lookup in PATH
	ConfigPath string `yaml:"config_path"` // passed as --config when set
}

// BridgeConfig holds settings for the local HTTP/WebSocket bridge.
type BridgeConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"` // 0 = dynamic allocation
}

// Settings represents global shell settings.
// This corresponds to ~/.gpuhost/settings.yaml.
type Settings struct {
	Version            int          `yaml:"version"`
	Worker             WorkerConfig `yaml:"worker"`
	Bridge             BridgeConfig `yaml:"bridge"`
	StopTimeoutSeconds int          `yaml:"stop_timeout_seconds"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Worker: WorkerConfig{
			Path:       "", // lookup "providerd" in PATH
			ConfigPath: "",
		},
		Bridge: BridgeConfig{
			Host: "127.0.0.1",
			Port: 0,
		},
		StopTimeoutSeconds: 10,
	}
}
