package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadLocalConfig(t *testing.T) {
	dir := t.TempDir()
	content := `# zfscheck local configuration
[thresholds]
warning = 0.70
critical = 0.90

[zfs]
platform = freebsd
timeout = 30

[output]
no_color = true
log_level = debug
interval = 10
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	local, err := LoadLocalConfig()
	if err != nil {
		t.Fatalf("LoadLocalConfig: %v", err)
	}
	if local == nil {
		t.Fatal("expected config, got nil")
	}

	if local.Warning != 0.70 {
		t.Errorf("Warning = %v, want 0.70", local.Warning)
	}
	if local.Critical != 0.90 {
		t.Errorf("Critical = %v, want 0.90", local.Critical)
	}
	if local.Platform != "freebsd" {
		t.Errorf("Platform = %q, want freebsd", local.Platform)
	}
	if local.Timeout != 30 {
		t.Errorf("Timeout = %d, want 30", local.Timeout)
	}
	if !local.NoColor {
		t.Error("NoColor = false, want true")
	}
	if local.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", local.LogLevel)
	}
	if local.Interval != 10 {
		t.Errorf("Interval = %d, want 10", local.Interval)
	}
}

func TestLoadLocalConfigMissingFile(t *testing.T) {
	wd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	local, err := LoadLocalConfig()
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if local != nil {
		t.Errorf("expected nil config for missing file, got %+v", local)
	}
}

func TestApplyLocalConfig(t *testing.T) {
	cfg := New()
	local := &LocalConfig{
		Warning:     0.50,
		Critical:    0.75,
		hasWarning:  true,
		hasCritical: true,
		Platform:    "solaris",
		Timeout:     20,
	}

	ApplyLocalConfig(cfg, local)

	if cfg.WarningRatio != 0.50 {
		t.Errorf("WarningRatio = %v, want 0.50", cfg.WarningRatio)
	}
	if cfg.CriticalRatio != 0.75 {
		t.Errorf("CriticalRatio = %v, want 0.75", cfg.CriticalRatio)
	}
	if cfg.Platform != "solaris" {
		t.Errorf("Platform = %q, want solaris", cfg.Platform)
	}
	if cfg.Timeout != 20*time.Second {
		t.Errorf("Timeout = %v, want 20s", cfg.Timeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero warning rejected",
			mutate:  func(c *Config) { c.WarningRatio = 0 },
			wantErr: true,
		},
		{
			name:    "warning above one rejected",
			mutate:  func(c *Config) { c.WarningRatio = 1.2 },
			wantErr: true,
		},
		{
			name:    "negative critical rejected",
			mutate:  func(c *Config) { c.CriticalRatio = -0.1 },
			wantErr: true,
		},
		{
			name: "warning above critical is accepted",
			mutate: func(c *Config) {
				c.WarningRatio = 0.90
				c.CriticalRatio = 0.50
			},
		},
		{
			name:    "zero timeout rejected",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
