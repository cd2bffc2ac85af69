package cli

import (
	"github.com/spf13/cobra"

	"github.com/fourteendev/httpman/http"
)

var postCmd = &cobra.Command{
	Use:   "post URL",
	Short: "Make a POST request to the specified URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, http.MethodPost, args[0])
	},
}

func init() {
	addRequestFlags(postCmd, true)
}
