// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"vidadeus/cli/internal/api"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	profileName   string
	profileAvatar string
)

// profileCmd shows the account profile and applies partial updates.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
	Long: `The profile command shows your account profile. Pass --name or --avatar
to update those fields; anything you don't pass stays as it is.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, client, ok, err := requireAuth(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		req := api.UpdateProfileRequest{}
		changed := false
		if cmd.Flags().Changed("name") {
			req.Name = &profileName
			changed = true
		}
		if cmd.Flags().Changed("avatar") {
			req.AvatarURL = &profileAvatar
			changed = true
		}

		var profile *api.UserProfile
		if changed {
			profile, err = client.UpdateMe(ctx, req)
		} else {
			profile, err = client.Me(ctx)
		}
		if err != nil {
			return presentAPIError(mgr, client, err)
		}

		rows := pterm.TableData{
			{"Name", profile.Name},
			{"Email", profile.Email},
			{"Plan", profile.Plan},
		}
		if profile.MembershipSince != nil {
			rows = append(rows, []string{"Member since", *profile.MembershipSince})
		}
		if profile.AvatarURL != nil {
			rows = append(rows, []string{"Avatar", *profile.AvatarURL})
		}
		if err := pterm.DefaultTable.WithData(rows).Render(); err != nil {
			return fmt.Errorf("render profile table: %w", err)
		}
		if changed {
			fmt.Println("✅ Profile updated")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVar(&profileName, "name", "", "Display name")
	profileCmd.Flags().StringVar(&profileAvatar, "avatar", "", "Avatar image URL")
}
