package cli

import (
	"github.com/spf13/cobra"

	"github.com/fourteendev/httpman/http"
)

var getCmd = &cobra.Command{
	Use:   "get URL",
	Short: "Make a GET request to the specified URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, http.MethodGet, args[0])
	},
}

func init() {
	addRequestFlags(getCmd, false)
}
