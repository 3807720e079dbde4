package cmd

import (
	"fmt"

	"vidadeus/cli/internal/httperrors"

	"github.com/spf13/cobra"
)

// forgotPasswordCmd requests a password recovery email. It does not require
// an authenticated session.
var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password [email]",
	Short: "Request a password recovery email",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := newSession()
		if err != nil {
			return err
		}

		var email string
		if len(args) == 1 {
			email = args[0]
		} else {
			email, err = promptLine("Email: ")
			if err != nil {
				return err
			}
		}
		if email == "" {
			return fmt.Errorf("email is required")
		}

		msg, err := client.ForgotPassword(cmd.Context(), email)
		if err != nil {
			return httperrors.FormatNetworkError(err, client.BaseURL())
		}
		fmt.Printf("✉️  %s\n", msg.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(forgotPasswordCmd)
}
