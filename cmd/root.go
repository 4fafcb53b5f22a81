package cmd

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
)

// Exit codes follow errno values so a supervising init can tell failures apart.
const (
	exitOK              = 0
	exitInvalidArgument = int(syscall.EINVAL)
	exitNoDevice        = int(syscall.ENODEV)
)

var configFlag string

var rootCmd = &cobra.Command{
	Use:   "golang-ethmonitor <interface>",
	Short: "golang-ethmonitor watches the link of one interface and keeps its DHCP lease current",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		switch len(args) {
		case 0:
			fmt.Printf("Usage: %s eth0\n", cmd.Root().Name())
			os.Exit(exitOK)
		case 1:
			os.Exit(runMonitor(args[0]))
		default:
			fmt.Fprintln(os.Stderr, "Invalid number of arguments")
			os.Exit(exitInvalidArgument)
		}
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.Flags().StringVarP(&configFlag, "config", "f", "", "Path to config file (YAML), defaults apply when omitted")
}
