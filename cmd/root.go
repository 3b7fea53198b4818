package cmd

import (
	"context"
	"fmt"
	"time"

	"zfscheck/internal/config"
	"zfscheck/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	cfg *config.Config
	log logger.Logger

	timeoutSeconds  int
	intervalSeconds int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zfscheck",
	Short: "Nagios-compatible ZFS dataset usage probe",
	Long: `A monitoring probe for ZFS dataset space usage.

The check command queries a dataset with the platform's zfs list command,
classifies the usage fraction against warning and critical ratios, prints
one Nagios plugin status line and exits 0/1/2/3 for
OK/WARNING/CRITICAL/UNKNOWN. The watch command renders the same
measurement live in the terminal.

Thresholds are ratios of total (used + available) space, e.g. 0.60 for
60%. Defaults: warning 0.60, critical 0.80. The ratios are not required
to be ordered; with warning above critical the WARNING state is simply
never reached.

For help with specific commands, use: zfscheck [command] --help`,
	Version:       "",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return nil
		}

		// Store which flags were explicitly set by user
		flagsSet := make(map[string]bool)
		cmd.Flags().Visit(func(f *pflag.Flag) {
			flagsSet[f.Name] = true
		})

		// Load local config if not disabled
		if !cfg.NoLoadConfig {
			if localCfg, err := config.LoadLocalConfig(); err != nil {
				log.Warn("Failed to load local config", "error", err)
			} else if localCfg != nil {
				// Save current flag values that were explicitly set
				savedWarning := cfg.WarningRatio
				savedCritical := cfg.CriticalRatio
				savedPlatform := cfg.Platform
				savedTimeout := cfg.Timeout
				savedInterval := cfg.RefreshInterval

				// Apply config from file
				config.ApplyLocalConfig(cfg, localCfg)
				log.Debug("Loaded configuration from " + config.ConfigFileName)

				// Restore explicitly set flag values (flags have priority)
				if flagsSet["warning"] {
					cfg.WarningRatio = savedWarning
				}
				if flagsSet["critical"] {
					cfg.CriticalRatio = savedCritical
				}
				if flagsSet["platform"] {
					cfg.Platform = savedPlatform
				}
				if flagsSet["timeout"] {
					cfg.Timeout = savedTimeout
				}
				if flagsSet["interval"] {
					cfg.RefreshInterval = savedInterval
				}
			}
		}

		// Duration flags are exposed as plain seconds
		if flagsSet["timeout"] {
			cfg.Timeout = time.Duration(timeoutSeconds) * time.Second
		}
		if flagsSet["interval"] {
			cfg.RefreshInterval = time.Duration(intervalSeconds) * time.Second
		}

		if cfg.Debug {
			cfg.LogLevel = "debug"
			log = logger.New(cfg.LogLevel, cfg.LogFormat)
		}

		return cfg.Validate()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context, config *config.Config, logger logger.Logger) error {
	cfg = config
	log = logger

	// Set version info
	rootCmd.Version = fmt.Sprintf("%s (built: %s, commit: %s)",
		cfg.Version, cfg.BuildTime, cfg.GitCommit)

	timeoutSeconds = int(cfg.Timeout / time.Second)
	intervalSeconds = int(cfg.RefreshInterval / time.Second)

	// Add persistent flags
	rootCmd.PersistentFlags().Float64VarP(&cfg.WarningRatio, "warning", "w", cfg.WarningRatio, "Warning threshold as a ratio of total space")
	rootCmd.PersistentFlags().Float64VarP(&cfg.CriticalRatio, "critical", "c", cfg.CriticalRatio, "Critical threshold as a ratio of total space")
	rootCmd.PersistentFlags().StringVar(&cfg.Platform, "platform", cfg.Platform, "Platform identifier selecting the zfs variant")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", timeoutSeconds, "zfs command timeout in seconds")
	rootCmd.PersistentFlags().IntVar(&intervalSeconds, "interval", intervalSeconds, "Watch refresh interval in seconds")
	rootCmd.PersistentFlags().BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json)")
	rootCmd.PersistentFlags().BoolVar(&cfg.NoLoadConfig, "no-config", false, "Don't load configuration from .zfscheck.conf")

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Register subcommands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(platformsCmd)
}
