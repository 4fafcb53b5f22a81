package cmd

import (
	"fmt"

	"golang-ethmonitor/internal/pkg/version"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build info",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(version.Get())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
