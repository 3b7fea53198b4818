package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const ConfigFileName = ".zfscheck.conf"

// LocalConfig represents a saved configuration in the current directory
type LocalConfig struct {
	// Threshold settings
	Warning  float64
	Critical float64

	// Measurement settings
	Platform string
	Timeout  int // seconds

	// Output settings
	NoColor   bool
	LogLevel  string
	LogFormat string
	Interval  int // seconds, watch mode

	hasWarning  bool
	hasCritical bool
}

// LoadLocalConfig loads configuration from .zfscheck.conf in current directory
func LoadLocalConfig() (*LocalConfig, error) {
	configPath := filepath.Join(".", ConfigFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // No config file, not an error
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &LocalConfig{}
	lines := strings.Split(string(data), "\n")
	currentSection := ""

	for _, line := range lines {
		line = strings.TrimSpace(line)

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Section headers
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.Trim(line, "[]")
			continue
		}

		// Key-value pairs
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch currentSection {
		case "thresholds":
			switch key {
			case "warning":
				if f, err := strconv.ParseFloat(value, 64); err == nil {
					cfg.Warning = f
					cfg.hasWarning = true
				}
			case "critical":
				if f, err := strconv.ParseFloat(value, 64); err == nil {
					cfg.Critical = f
					cfg.hasCritical = true
				}
			}
		case "zfs":
			switch key {
			case "platform":
				cfg.Platform = value
			case "timeout":
				if i, err := strconv.Atoi(value); err == nil {
					cfg.Timeout = i
				}
			}
		case "output":
			switch key {
			case "no_color":
				if b, err := strconv.ParseBool(value); err == nil {
					cfg.NoColor = b
				}
			case "log_level":
				cfg.LogLevel = value
			case "log_format":
				cfg.LogFormat = value
			case "interval":
				if i, err := strconv.Atoi(value); err == nil {
					cfg.Interval = i
				}
			}
		}
	}

	return cfg, nil
}

// ApplyLocalConfig applies file values onto a Config. Flag precedence is
// handled by the caller, which restores explicitly-set flag values
// afterwards.
func ApplyLocalConfig(cfg *Config, local *LocalConfig) {
	if local.hasWarning {
		cfg.WarningRatio = local.Warning
	}
	if local.hasCritical {
		cfg.CriticalRatio = local.Critical
	}
	if local.Platform != "" {
		cfg.Platform = local.Platform
	}
	if local.Timeout > 0 {
		cfg.Timeout = time.Duration(local.Timeout) * time.Second
	}
	if local.NoColor {
		cfg.NoColor = true
	}
	if local.LogLevel != "" {
		cfg.LogLevel = local.LogLevel
	}
	if local.LogFormat != "" {
		cfg.LogFormat = local.LogFormat
	}
	if local.Interval > 0 {
		cfg.RefreshInterval = time.Duration(local.Interval) * time.Second
	}
}
