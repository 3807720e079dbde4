// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"vidadeus/cli/internal/keychain"

	"github.com/spf13/cobra"
)

// logoutCmd represents the logout command for clearing authentication state.
// It removes all saved credentials and tokens from both the local system and
// the backend service (best-effort remote logout).
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove all saved credentials and tokens",
	Long: `The logout command clears all authentication state from the local system,
including access tokens and refresh tokens. It also attempts to notify the
backend service to invalidate the current session (best-effort).

This command removes:
- Authentication tokens from the OS keychain
- Database connection credentials
- Any cached session information`,

	RunE: func(cmd *cobra.Command, args []string) error {
		// Logout always succeeds locally even when the backend is unreachable
		if mgr, _, err := newSession(); err == nil {
			mgr.InitFromStorage(cmd.Context())
			mgr.Logout(cmd.Context())
		}

		if km, err := keychain.GetManager(); err == nil {
			_ = km.ClearAll()
		}

		fmt.Println("✅ All credentials and tokens have been removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
