// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// feedCmd represents the feed command for browsing the devotional feed.
// It shows the post of the day in a highlighted box followed by a table of
// recent posts.
var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the devotional feed",
	Long: `The feed command fetches the home feed from the backend and displays
the post of the day along with recent devotional posts.

Use 'vida post <id>' to read a full devotional.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, client, ok, err := requireAuth(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		stopSpinner := startInlineSpinner(os.Stdout, "Loading your feed")
		feed, err := client.Feed(ctx)
		stopSpinner()
		if err != nil {
			return presentAPIError(mgr, client, err)
		}

		pod := feed.PostOfDay
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Post of the Day")).
			WithPadding(1).
			Printfln("%s\n%s · %s\nid: %s", pod.Title, pod.Reference, pod.Date, pod.ID)
		pterm.Println()

		if len(feed.RecentPosts) == 0 {
			pterm.Println("No recent posts yet.")
			return nil
		}

		rows := pterm.TableData{{"ID", "Date", "Category", "Title", "Reference", ""}}
		for _, p := range feed.RecentPosts {
			marker := ""
			if p.IsNew {
				marker = "new"
			}
			if p.IsStarred {
				marker = strings.TrimSpace(marker + " ★")
			}
			rows = append(rows, []string{p.ID, p.Date, p.Category, p.Title, p.Reference, marker})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
			return fmt.Errorf("render feed table: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(feedCmd)
}
