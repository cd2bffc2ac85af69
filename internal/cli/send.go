package cli

import (
	"github.com/spf13/cobra"

	"github.com/fourteendev/httpman/http"
)

var sendCmd = &cobra.Command{
	Use:   "send URL",
	Short: "Send an API request with an explicit method and bearer token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		methodFlag, _ := cmd.Flags().GetString("method")
		method, err := http.ParseMethod(methodFlag)
		if err != nil {
			return err
		}
		return runRequest(cmd, method, args[0])
	},
}

func init() {
	addRequestFlags(sendCmd, true)
	sendCmd.Flags().StringP("method", "X", "GET", "HTTP method to use")
	sendCmd.Flags().String("token", "", "Bearer token for the Authorization header")
}
