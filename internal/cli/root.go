package cli

import (
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any
// subcommands.
var RootCmd = &cobra.Command{
	Use:     "httpman",
	Short:   "A terminal HTTP client with default headers and retries",
	Version: version,
	Long: `Httpman is a terminal HTTP client built on a retrying request manager.
Every request goes out with the configured default headers, a bounded
fixed-delay retry loop, and a pooled connection transport.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print help
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). Cobra reports the error itself.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(postCmd)
	RootCmd.AddCommand(putCmd)
	RootCmd.AddCommand(deleteCmd)
	RootCmd.AddCommand(sendCmd)
}
