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
	settingsTheme     string
	settingsAI        string
	settingsReminders string
	settingsRAG       string
)

// settingsCmd represents the settings command for account preferences.
// Without flags it shows the current settings; any flag triggers a partial
// update that leaves the other preferences untouched.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or update account preferences",
	Long: `The settings command shows your account preferences. Pass one or more
flags to update them; unset flags keep their current value.

Boolean flags accept "on" or "off":

  vida settings --theme dark --ai-insights off`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, client, ok, err := requireAuth(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		req := api.UpdateSettingsRequest{}
		changed := false
		if cmd.Flags().Changed("theme") {
			req.Theme = &settingsTheme
			changed = true
		}
		if cmd.Flags().Changed("ai-insights") {
			v, err := parseToggle(settingsAI)
			if err != nil {
				return err
			}
			req.AIInsights = &v
			changed = true
		}
		if cmd.Flags().Changed("reminders") {
			v, err := parseToggle(settingsReminders)
			if err != nil {
				return err
			}
			req.BiblicalReminders = &v
			changed = true
		}
		if cmd.Flags().Changed("rag-memory") {
			v, err := parseToggle(settingsRAG)
			if err != nil {
				return err
			}
			req.RAGMemory = &v
			changed = true
		}

		var settings *api.UserSettings
		if changed {
			settings, err = client.UpdateSettings(ctx, req)
		} else {
			settings, err = client.Settings(ctx)
		}
		if err != nil {
			return presentAPIError(mgr, client, err)
		}

		rows := pterm.TableData{
			{"Theme", settings.Theme},
			{"AI insights", formatToggle(settings.AIInsights)},
			{"Biblical reminders", formatToggle(settings.BiblicalReminders)},
			{"RAG memory", formatToggle(settings.RAGMemory)},
		}
		if err := pterm.DefaultTable.WithData(rows).Render(); err != nil {
			return fmt.Errorf("render settings table: %w", err)
		}
		if changed {
			fmt.Println("✅ Settings updated")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.Flags().StringVar(&settingsTheme, "theme", "", "UI theme (light or dark)")
	settingsCmd.Flags().StringVar(&settingsAI, "ai-insights", "", "Enable AI insights (on/off)")
	settingsCmd.Flags().StringVar(&settingsReminders, "reminders", "", "Enable biblical reminders (on/off)")
	settingsCmd.Flags().StringVar(&settingsRAG, "rag-memory", "", "Enable RAG conversation memory (on/off)")
}

// parseToggle maps on/off style flag values to a bool.
func parseToggle(v string) (bool, error) {
	switch v {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid value %q (expected on or off)", v)
}

func formatToggle(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
