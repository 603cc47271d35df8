package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/vietddude/steady/internal/core/config"
	"github.com/vietddude/steady/internal/simulation"
	"github.com/vietddude/steady/internal/telemetry"
	"github.com/vietddude/stylelog"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	isDebug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// .env is optional, used for local overrides of ${VAR} config values
	_ = godotenv.Load()

	// Load Configuration first (before setting up logger)
	cfg, err := config.Load(*configPath)
	if err != nil {
		// Fall back to default logger for config load errors
		stylelog.InitDefault()
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Simplified logging logic (debug < info)
	slogLevel := slog.LevelInfo
	if *isDebug || cfg.Logging.Level == "debug" {
		slogLevel = slog.LevelDebug
	}

	// Initialize stylelog with tint.Options for level control
	stylelog.InitDefault(
		&tint.Options{
			Level:      slogLevel,
			TimeFormat: time.RFC3339,
		})
	slog.Info("Logger initialized", "level", slogLevel.String())

	// Telemetry server (/metrics, /health)
	telemetryServer := telemetry.NewServer(cfg.Server.Port)
	go func() {
		if err := telemetryServer.Start(); err != nil {
			slog.Error("Telemetry server failed", "error", err)
		}
	}()
	slog.Info("Telemetry server listening", "port", cfg.Server.Port)

	// Setup Context with Cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle OS Signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start the workload runner
	runner := simulation.NewRunner(cfg)
	if err := runner.Start(ctx); err != nil {
		slog.Error("Failed to start runner", "error", err)
		os.Exit(1)
	}

	// Wait for Signal
	sig := <-sigChan
	slog.Info("Received signal, shutting down...", "signal", sig)

	// Graceful Shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := runner.Stop(shutdownCtx); err != nil {
		slog.Error("Error during shutdown", "error", err)
		os.Exit(1)
	}
	if err := telemetryServer.Stop(shutdownCtx); err != nil {
		slog.Error("Error stopping telemetry server", "error", err)
		os.Exit(1)
	}

	slog.Info("Stopped gracefully")
}
