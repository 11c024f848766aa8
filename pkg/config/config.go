// Package config handles tool configuration loading.
package config

// Config holds all tool settings.
type Config struct {
	Kernel   KernelConfig   `yaml:"kernel"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// KernelConfig selects and tunes the geometry kernel backend.
type KernelConfig struct {
	Backend string `yaml:"backend"` // currently only "sdfx"
}

// AnalysisConfig holds analysis defaults applied when a request leaves them
// unset.
type AnalysisConfig struct {
	DefaultMaterial string `yaml:"default_material"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Kernel: KernelConfig{
			Backend: "sdfx",
		},
		Analysis: AnalysisConfig{
			DefaultMaterial: "aluminum-6061-T6",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
