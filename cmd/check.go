package cmd

import (
	"fmt"
	"os"

	"zfscheck/internal/check"
	"zfscheck/internal/nagios"
	"zfscheck/internal/zfs"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <dataset>",
	Short: "Probe a dataset once and print a Nagios status line",
	Long: `Query a ZFS dataset's used and available space, classify the usage
fraction against the warning and critical ratios, and print a single
plugin-format line to stdout:

  zfs dataset tank usage is OK used = 50G total = 150G | 'tank'=53687091200B;96636764160B;128849018880B;0;0

The process exit code is the Nagios state: 0 OK, 1 WARNING, 2 CRITICAL,
3 UNKNOWN. Measurement failures print their diagnostic to stderr, leave
stdout empty and exit UNKNOWN.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, args[0])
	},
}

func runCheck(cmd *cobra.Command, dataset string) error {
	runner := &zfs.ExecRunner{Timeout: cfg.Timeout, Log: log}

	source, err := zfs.NewSource(cfg.Platform, runner)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nagios.Status(nagios.Unknown, "%s", err)
	}

	entry, err := source.List(cmd.Context(), dataset)
	if err != nil {
		// The raw failure text from the measurement command goes to
		// stderr; stdout stays empty so the scheduler never parses a
		// partial line.
		fmt.Fprintln(os.Stderr, err)
		return nagios.Status(nagios.Unknown, "measurement failed")
	}

	report := check.Evaluate(entry.Name, entry.Used, entry.Avail,
		cfg.WarningRatio, cfg.CriticalRatio)

	fmt.Println(check.FormatReport(report))

	if report.Severity == nagios.OK {
		return nil
	}
	return &nagios.StatusError{Severity: report.Severity}
}
