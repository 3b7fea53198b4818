package cmd

import (
	"fmt"
	"runtime"

	"zfscheck/internal/zfs"

	"github.com/spf13/cobra"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List supported measurement platforms",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Supported platforms:")
		for _, p := range zfs.SupportedPlatforms() {
			marker := " "
			if p == cfg.Platform {
				marker = "*"
			}
			fmt.Printf("  %s %s\n", marker, p)
		}
		fmt.Printf("\nDetected: %s (override with --platform or ZFS_PLATFORM)\n", runtime.GOOS)
		return nil
	},
}
