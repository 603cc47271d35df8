package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a configuration with every field at its default, for
// callers that run without a config file.
func Default() *AppConfig {
	var cfg AppConfig
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	if cfg.Retry.MaxRetries == 0 {
		cfg.Retry.MaxRetries = 3
	}
	if cfg.Retry.InitialDelayMS == 0 {
		cfg.Retry.InitialDelayMS = 1000
	}
	if cfg.Retry.MaxDelayMS == 0 {
		cfg.Retry.MaxDelayMS = 10000
	}
	if cfg.Retry.Multiplier == 0 {
		cfg.Retry.Multiplier = 2.0
	}

	if cfg.Cache.MaxSize == 0 {
		cfg.Cache.MaxSize = 100
	}

	if cfg.Window.ItemHeight == 0 {
		cfg.Window.ItemHeight = 40
	}
	if cfg.Window.ContainerHeight == 0 {
		cfg.Window.ContainerHeight = 400
	}
	if cfg.Window.Overscan == 0 {
		cfg.Window.Overscan = 3
	}

	if cfg.Shaper.DebounceMS == 0 {
		cfg.Shaper.DebounceMS = 300
	}
	if cfg.Shaper.ThrottleMS == 0 {
		cfg.Shaper.ThrottleMS = 100
	}

	if cfg.Simulation.FetchIntervalMS == 0 {
		cfg.Simulation.FetchIntervalMS = 2000
	}
	if cfg.Simulation.ScrollIntervalMS == 0 {
		cfg.Simulation.ScrollIntervalMS = 50
	}
	if cfg.Simulation.FetchTimeoutMS == 0 {
		cfg.Simulation.FetchTimeoutMS = 1500
	}
	if cfg.Simulation.FailureRate == 0 {
		cfg.Simulation.FailureRate = 0.3
	}
	if cfg.Simulation.TotalItems == 0 {
		cfg.Simulation.TotalItems = 5000
	}
}
