// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"vidadeus/cli/internal/api"
	"vidadeus/cli/internal/httperrors"
	"vidadeus/cli/internal/terminal"

	"github.com/spf13/cobra"
)

var loginEmail string

// loginCmd represents the login command for email/password authentication.
// It prompts for credentials, exchanges them for a token pair through the
// backend, and stores the tokens securely in the OS keychain.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Sign in with your Vida com Deus account",
	Long: `The login command authenticates against the Vida com Deus backend using
your email and password. On success the resulting access and refresh tokens
are stored in the OS keychain and reused by every other command.

If already logged in with valid credentials, it will skip the authentication flow.
The password prompt does not echo input; when stdin is not a terminal the
password is read as a plain line instead.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mgr, client, err := newSession()
		if err != nil {
			return err
		}

		// If already logged in with a valid token, short-circuit
		mgr.InitFromStorage(ctx)
		if mgr.IsAuthenticated() {
			if profile, err := client.Me(ctx); err == nil {
				fmt.Printf("Already logged in as %s\n", profile.Email)
				return nil
			}
		}

		email := loginEmail
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

		stopSpinner := startInlineSpinner(os.Stdout, "Signing in")
		err = mgr.Login(ctx, email, password)
		stopSpinner()
		if err != nil {
			if api.IsUnauthorized(err) {
				fmt.Println("❌ Invalid email or password")
				return nil
			}
			return httperrors.FormatNetworkError(err, client.BaseURL())
		}

		// Show friendly greeting, preferring the display name over the email
		if u := mgr.User(); u != nil && u.Name != "" {
			fmt.Println(getRandomLoginGreeting(u.Name))
		} else {
			fmt.Println(getRandomLoginGreeting(email))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (prompted when omitted)")
	// Seed random number generator for greeting selection
	rand.Seed(time.Now().UnixNano())
}

// getRandomLoginGreeting returns a random greeting phrase with the user's identifier
func getRandomLoginGreeting(identifier string) string {
	greetings := []string{
		"🎉 Welcome back, %s!",
		"✨ Great to see you, %s!",
		"🙏 Peace be with you, %s!",
		"👋 Hello %s! Your devotionals await.",
		"💫 Successfully authenticated as %s",
		"🌟 Welcome aboard, %s!",
		"✅ Authentication complete! Hi %s!",
		"🔓 Access granted! Welcome %s!",
	}

	idx := rand.Intn(len(greetings))
	return fmt.Sprintf(greetings[idx], identifier)
}
