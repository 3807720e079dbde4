// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strings"

	"vidadeus/cli/internal/api"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var libraryTab string

// libraryCmd groups the personal library subcommands.
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage your personal library",
	Long: `The library command manages your personal library of saved devotionals
and chats. Use 'list' to browse favorites or history, and 'favorite' /
'unfavorite' to toggle a post.`,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved items",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, client, ok, err := requireAuth(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		tab := strings.ToLower(libraryTab)
		if tab != api.LibraryTabFavorites && tab != api.LibraryTabHistory {
			return fmt.Errorf("invalid tab %q (expected %q or %q)", libraryTab, api.LibraryTabFavorites, api.LibraryTabHistory)
		}

		lib, err := client.Library(ctx, tab)
		if err != nil {
			return presentAPIError(mgr, client, err)
		}
		if len(lib.Items) == 0 {
			pterm.Printf("Your %s list is empty.\n", tab)
			return nil
		}

		rows := pterm.TableData{{"Post", "Type", "Title", "Saved", "Tags"}}
		for _, item := range lib.Items {
			rows = append(rows, []string{
				item.PostID, item.Type, item.Title, item.SavedAt, strings.Join(item.Tags, ", "),
			})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
			return fmt.Errorf("render library table: %w", err)
		}
		pterm.Printf("\n%d item(s)\n", lib.Total)
		return nil
	},
}

var libraryFavoriteCmd = &cobra.Command{
	Use:   "favorite <post-id>",
	Short: "Add a post to your favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleFavorite(cmd, args[0], true)
	},
}

var libraryUnfavoriteCmd = &cobra.Command{
	Use:   "unfavorite <post-id>",
	Short: "Remove a post from your favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleFavorite(cmd, args[0], false)
	},
}

func toggleFavorite(cmd *cobra.Command, postID string, add bool) error {
	ctx := cmd.Context()
	mgr, client, ok, err := requireAuth(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	var out *api.FavoriteToggleResponse
	if add {
		out, err = client.AddFavorite(ctx, postID)
	} else {
		out, err = client.RemoveFavorite(ctx, postID)
	}
	if err != nil {
		if api.IsStatus(err, 404) {
			fmt.Printf("❌ Post %q was not found\n", postID)
			return nil
		}
		return presentAPIError(mgr, client, err)
	}

	if out.IsFavorited {
		fmt.Printf("⭐ %s\n", out.Message)
	} else {
		fmt.Printf("✅ %s\n", out.Message)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryListCmd, libraryFavoriteCmd, libraryUnfavoriteCmd)
	libraryListCmd.Flags().StringVar(&libraryTab, "tab", api.LibraryTabFavorites, "Library tab to show (favorites or history)")
}
