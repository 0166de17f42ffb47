package config

import "github.com/google/wire"

// ProviderSet is the wire provider set for the config package.
// It provides the main *Config and extracts sub-configurations for
// other modules to use.
var ProviderSet = wire.NewSet(
	ProvideConfig,
	ProvideLoggerConfig,
	ProvideResponseConfig,
	ProvideWorkerConfig,
)

// ProvideConfig loads the configuration from path.
func ProvideConfig(path string) (*Config, error) {
	return Init(path)
}

// ProvideLoggerConfig provides the logger configuration.
func ProvideLoggerConfig(cfg *Config) *Logger {
	if cfg == nil {
		return nil
	}
	return cfg.Logger
}

// ProvideResponseConfig provides the response envelope configuration.
func ProvideResponseConfig(cfg *Config) *Response {
	if cfg == nil {
		return nil
	}
	return cfg.Response
}

// ProvideWorkerConfig provides the background job pool configuration.
func ProvideWorkerConfig(cfg *Config) *Worker {
	if cfg == nil {
		return nil
	}
	return cfg.Worker
}
