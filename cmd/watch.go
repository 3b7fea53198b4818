package cmd

import (
	"fmt"
	"os"

	"zfscheck/internal/nagios"
	"zfscheck/internal/tui"
	"zfscheck/internal/zfs"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dataset>",
	Short: "Live terminal view of a dataset's usage",
	Long: `Poll a ZFS dataset on the configured interval and render its usage
in the terminal, with the same classification the check command applies.
Press r to refresh immediately, q to quit.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := &zfs.ExecRunner{Timeout: cfg.Timeout, Log: log}

		source, err := zfs.NewSource(cfg.Platform, runner)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return nagios.Status(nagios.Unknown, "%s", err)
		}

		return tui.RunWatch(cmd.Context(), cfg, log, source, args[0])
	},
}
