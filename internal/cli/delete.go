package cli

import (
	"github.com/spf13/cobra"

	"github.com/fourteendev/httpman/http"
)

var deleteCmd = &cobra.Command{
	Use:   "delete URL",
	Short: "Make a DELETE request to the specified URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, http.MethodDelete, args[0])
	},
}

func init() {
	addRequestFlags(deleteCmd, false)
}
