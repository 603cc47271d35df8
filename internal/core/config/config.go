package config

import (
	"time"

	"github.com/vietddude/steady/internal/resilience"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Retry      RetryConfig      `yaml:"retry"`
	Cache      CacheConfig      `yaml:"cache"`
	Window     WindowConfig     `yaml:"window"`
	Shaper     ShaperConfig     `yaml:"shaper"`
	Simulation SimulationConfig `yaml:"simulation"`
}

// ServerConfig holds telemetry HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// RetryConfig holds retry policy settings. Durations are milliseconds.
type RetryConfig struct {
	MaxRetries     int     `yaml:"max_retries"`
	InitialDelayMS int     `yaml:"initial_delay_ms"`
	MaxDelayMS     int     `yaml:"max_delay_ms"`
	Multiplier     float64 `yaml:"multiplier"`
}

// Policy converts the section into a resilience.Policy.
func (c RetryConfig) Policy() resilience.Policy {
	return resilience.Policy{
		MaxRetries:   c.MaxRetries,
		InitialDelay: time.Duration(c.InitialDelayMS) * time.Millisecond,
		MaxDelay:     time.Duration(c.MaxDelayMS) * time.Millisecond,
		Multiplier:   c.Multiplier,
	}
}

// CacheConfig holds memoization cache settings.
type CacheConfig struct {
	MaxSize int `yaml:"max_size"`
}

// WindowConfig holds list geometry for the windowing calculator.
type WindowConfig struct {
	ItemHeight      int `yaml:"item_height"`
	ContainerHeight int `yaml:"container_height"`
	Overscan        int `yaml:"overscan"`
}

// ShaperConfig holds debounce/throttle windows. Durations are milliseconds.
type ShaperConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
	ThrottleMS int `yaml:"throttle_ms"`
}

// SimulationConfig holds knobs for the synthetic workload runner.
type SimulationConfig struct {
	FetchIntervalMS  int     `yaml:"fetch_interval_ms"`
	ScrollIntervalMS int     `yaml:"scroll_interval_ms"`
	FetchTimeoutMS   int     `yaml:"fetch_timeout_ms"`
	FailureRate      float64 `yaml:"failure_rate"` // 0..1, share of fetches that fail transiently
	TotalItems       int     `yaml:"total_items"`
	Seed             int64   `yaml:"seed"` // 0 = time-based
}
