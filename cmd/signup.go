// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"

	"vidadeus/cli/internal/api"
	"vidadeus/cli/internal/httperrors"
	"vidadeus/cli/internal/terminal"

	"github.com/spf13/cobra"
)

var (
	signupName  string
	signupEmail string
)

// signupCmd represents the signup command for creating a new account.
// On success the backend issues a token pair immediately, so the user is
// logged in without a separate login step.
var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new Vida com Deus account",
	Long: `The signup command creates a new account on the Vida com Deus platform.
It prompts for your name, email and a password, and on success stores the
issued tokens in the OS keychain so you are logged in right away.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mgr, client, err := newSession()
		if err != nil {
			return err
		}

		name := signupName
		if name == "" {
			name, err = promptLine("Name: ")
			if err != nil {
				return err
			}
		}
		if name == "" {
			return fmt.Errorf("name is required")
		}

		email := signupEmail
		if email == "" {
			email, err = promptLine("Email: ")
			if err != nil {
				return err
			}
		}
		if email == "" {
			return fmt.Errorf("email is required")
		}

		password, err := terminal.ReadPassword("Password: ")
		if err != nil {
			return err
		}
		if password == "" {
			return fmt.Errorf("password is required")
		}

		stopSpinner := startInlineSpinner(os.Stdout, "Creating your account")
		err = mgr.Signup(ctx, name, email, password)
		stopSpinner()
		if err != nil {
			if apiErr, ok := api.AsAPIError(err); ok {
				fmt.Printf("❌ Could not create account: %s\n", apiErr.Message)
				return nil
			}
			return httperrors.FormatNetworkError(err, client.BaseURL())
		}

		fmt.Printf("🎉 Welcome to Vida com Deus, %s!\n", name)
		fmt.Println("   Run 'vida feed' to read today's devotional.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signupCmd)
	signupCmd.Flags().StringVar(&signupName, "name", "", "Display name (prompted when omitted)")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Account email (prompted when omitted)")
}
