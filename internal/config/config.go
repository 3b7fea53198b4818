package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"
)

// Default threshold ratios, matching common zfs check deployments
const (
	DefaultWarningRatio  = 0.60
	DefaultCriticalRatio = 0.80
)

// Config holds all configuration options
type Config struct {
	// Version information
	Version   string
	BuildTime string
	GitCommit string

	// Threshold ratios in (0,1]
	WarningRatio  float64
	CriticalRatio float64

	// Measurement command
	Platform string // platform identifier selecting the zfs variant
	Timeout  time.Duration

	// Watch mode
	RefreshInterval time.Duration

	// Output options
	NoColor   bool
	Debug     bool
	LogLevel  string
	LogFormat string

	// Skip loading .zfscheck.conf
	NoLoadConfig bool
}

// New creates a new configuration with default values
func New() *Config {
	return &Config{
		WarningRatio:  getEnvFloat("CHECK_WARNING", DefaultWarningRatio),
		CriticalRatio: getEnvFloat("CHECK_CRITICAL", DefaultCriticalRatio),

		Platform: getEnvString("ZFS_PLATFORM", runtime.GOOS),
		Timeout:  time.Duration(getEnvInt("ZFS_TIMEOUT", 10)) * time.Second,

		RefreshInterval: time.Duration(getEnvInt("WATCH_INTERVAL", 5)) * time.Second,

		NoColor:   getEnvBool("NO_COLOR", false),
		Debug:     getEnvBool("DEBUG", false),
		LogLevel:  getEnvString("LOG_LEVEL", "warn"),
		LogFormat: getEnvString("LOG_FORMAT", "text"),
	}
}

// Validate validates the configuration. Threshold ordering is deliberately
// not checked: warning above critical is a caller choice, not an error.
func (c *Config) Validate() error {
	if c.WarningRatio <= 0 || c.WarningRatio > 1 {
		return &ConfigError{Field: "warning", Value: formatRatio(c.WarningRatio), Message: "must be in (0, 1]"}
	}
	if c.CriticalRatio <= 0 || c.CriticalRatio > 1 {
		return &ConfigError{Field: "critical", Value: formatRatio(c.CriticalRatio), Message: "must be in (0, 1]"}
	}
	if c.Timeout <= 0 {
		return &ConfigError{Field: "timeout", Value: c.Timeout.String(), Message: "must be positive"}
	}
	if c.RefreshInterval <= 0 {
		return &ConfigError{Field: "interval", Value: c.RefreshInterval.String(), Message: "must be positive"}
	}
	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Value   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "' with value '" + e.Value + "': " + e.Message
}

func formatRatio(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Helper functions
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// DescribeThresholds renders the configured ratios for help and watch
// headers, e.g. "warn 60% / crit 80%".
func (c *Config) DescribeThresholds() string {
	return fmt.Sprintf("warn %.0f%% / crit %.0f%%", c.WarningRatio*100, c.CriticalRatio*100)
}
