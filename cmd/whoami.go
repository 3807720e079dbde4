package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// whoamiCmd represents the whoami command for displaying current authentication state.
// It shows the currently authenticated account by validating the stored session
// against the backend service.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show current authenticated account",
	Long: `The whoami command displays information about the currently authenticated account.
It validates the current session by checking with the backend service and shows
the account email if authentication is valid.

If no valid session exists, it will indicate that the user is not logged in.
This command is useful for verifying authentication status before running
other commands that require authentication.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, client, ok, err := requireAuth(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		// Prefer the freshly fetched profile, fall back to the cached one
		profile, err := client.Me(ctx)
		if err != nil {
			profile = mgr.User()
		}
		if profile == nil {
			fmt.Println("🔒 You're not logged in yet!")
			fmt.Println("   Run 'vida login' to get started.")
			return nil
		}

		fmt.Println(getWhoAmIPhrase(profile.Email))
		if profile.Name != "" {
			fmt.Printf("   Name: %s\n", profile.Name)
		}
		if profile.Plan != "" {
			fmt.Printf("   Plan: %s\n", profile.Plan)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// getWhoAmIPhrase returns a friendly phrase with the user's identifier
func getWhoAmIPhrase(identifier string) string {
	return fmt.Sprintf("👤 Current user: %s", identifier)
}
