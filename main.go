package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"zfscheck/cmd"
	"zfscheck/internal/config"
	"zfscheck/internal/logger"
	"zfscheck/internal/nagios"
)

// Build information (set by ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize configuration
	cfg := config.New()

	// Set version information
	cfg.Version = version
	cfg.BuildTime = buildTime
	cfg.GitCommit = gitCommit

	// Initialize logger
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Execute command. A StatusError carries the plugin state; anything
	// else is an unexpected failure, which a probe reports as UNKNOWN so
	// the scheduler never mistakes it for a healthy dataset.
	if err := cmd.Execute(ctx, cfg, log); err != nil {
		var status *nagios.StatusError
		if errors.As(err, &status) {
			os.Exit(status.Severity.ExitCode())
		}
		log.Error("Probe failed", "error", err)
		os.Exit(nagios.Unknown.ExitCode())
	}
}
