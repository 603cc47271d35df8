package config

import (
	"os"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "config_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpFile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	tmpFile.Close()
	return tmpFile.Name()
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("TEST_LOG_LEVEL", "debug")

	path := writeTempConfig(t, `
logging:
  level: ${TEST_LOG_LEVEL}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected level debug, got %s", cfg.Logging.Level)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeTempConfig(t, `
server:
  port: 9090
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Retry.MaxRetries != 3 {
		t.Errorf("Expected default max_retries 3, got %d", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.InitialDelayMS != 1000 {
		t.Errorf("Expected default initial_delay_ms 1000, got %d", cfg.Retry.InitialDelayMS)
	}
	if cfg.Retry.MaxDelayMS != 10000 {
		t.Errorf("Expected default max_delay_ms 10000, got %d", cfg.Retry.MaxDelayMS)
	}
	if cfg.Retry.Multiplier != 2.0 {
		t.Errorf("Expected default multiplier 2.0, got %f", cfg.Retry.Multiplier)
	}
	if cfg.Cache.MaxSize != 100 {
		t.Errorf("Expected default cache max_size 100, got %d", cfg.Cache.MaxSize)
	}
	if cfg.Window.Overscan != 3 {
		t.Errorf("Expected default overscan 3, got %d", cfg.Window.Overscan)
	}
}

func TestRetryConfig_Policy(t *testing.T) {
	rc := RetryConfig{
		MaxRetries:     5,
		InitialDelayMS: 200,
		MaxDelayMS:     4000,
		Multiplier:     3.0,
	}

	p := rc.Policy()
	if p.MaxRetries != 5 {
		t.Errorf("Expected MaxRetries 5, got %d", p.MaxRetries)
	}
	if p.InitialDelay.Milliseconds() != 200 {
		t.Errorf("Expected InitialDelay 200ms, got %v", p.InitialDelay)
	}
	if p.MaxDelay.Milliseconds() != 4000 {
		t.Errorf("Expected MaxDelay 4000ms, got %v", p.MaxDelay)
	}
	if p.Multiplier != 3.0 {
		t.Errorf("Expected Multiplier 3.0, got %f", p.Multiplier)
	}
}
