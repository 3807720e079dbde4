// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"vidadeus/cli/internal/api"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// postCmd represents the post command for reading a full devotional post.
// It renders the verse, AI summary, key points, meditation and prayer.
var postCmd = &cobra.Command{
	Use:   "post <id>",
	Short: "Read a devotional post",
	Long: `The post command fetches a single devotional post by its id and renders
the full content: the biblical verse, the AI-generated summary with key
points, the guided meditation and the closing prayer.

Post ids are shown by 'vida feed' and 'vida library list'.`,
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, client, ok, err := requireAuth(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		stopSpinner := startInlineSpinner(os.Stdout, "Loading post")
		post, err := client.Post(ctx, args[0])
		stopSpinner()
		if err != nil {
			if api.IsStatus(err, 404) {
				fmt.Printf("❌ Post %q was not found\n", args[0])
				return nil
			}
			return presentAPIError(mgr, client, err)
		}

		pterm.DefaultHeader.WithFullWidth().Printfln("%s  ·  %s", post.Title, post.Reference)
		pterm.Printf("%s · %s\n\n", post.Category, post.Date)

		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgYellow, pterm.Bold).Sprint(post.Reference)).
			WithPadding(1).
			Println(post.VerseContent)
		pterm.Println()

		if post.AISummary != "" {
			pterm.DefaultSection.Println("Summary")
			pterm.Println(post.AISummary)
		}
		if len(post.KeyPoints) > 0 {
			pterm.DefaultSection.Println("Key Points")
			for _, kp := range post.KeyPoints {
				pterm.Printf("  • %s\n", kp.Text)
			}
		}
		if post.DevotionalMeditation != "" {
			pterm.DefaultSection.Println("Meditation")
			pterm.Println(post.DevotionalMeditation)
		}
		if post.DevotionalPrayer != "" {
			pterm.DefaultSection.Println("Prayer")
			pterm.Println(post.DevotionalPrayer)
		}
		if len(post.Tags) > 0 {
			pterm.Println()
			pterm.Println(pterm.Gray("Tags: " + strings.Join(post.Tags, ", ")))
		}
		if post.AudioURL != nil && *post.AudioURL != "" {
			duration := ""
			if post.AudioDuration != nil {
				duration = " (" + *post.AudioDuration + ")"
			}
			pterm.Println(pterm.Gray("Audio: " + *post.AudioURL + duration))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(postCmd)
}
