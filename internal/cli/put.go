package cli

import (
	"github.com/spf13/cobra"

	"github.com/fourteendev/httpman/http"
)

var putCmd = &cobra.Command{
	Use:   "put URL",
	Short: "Make a PUT request to the specified URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, http.MethodPut, args[0])
	},
}

func init() {
	addRequestFlags(putCmd, true)
}
