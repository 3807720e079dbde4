// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the Vida com Deus CLI.
// It implements subcommands for authentication, the devotional feed, biblical
// AI chat, the personal library, account settings, platform administration and
// the therapist dashboard using the Cobra CLI framework. The package handles
// command parsing and execution and provides a terminal UI with spinners,
// boxes and tables.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vidadeus/cli/internal/api"
	"vidadeus/cli/internal/config"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
// It serves as the entry point for the vida CLI application.
var rootCmd = &cobra.Command{
	Use:           "vida",
	Short:         "Vida com Deus CLI for the devotional platform",
	Long:          `Vida is a command-line client for the Vida com Deus platform: daily devotional feed, biblical AI chat, personal library, account settings, and administration tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			cfg, err := config.Get()
			if err != nil {
				return err
			}

			backendVersion := "unknown"
			client := api.New(cfg.APIBaseURL, api.NewMemoryStore())
			if h, err := client.Health(cmd.Context()); err == nil {
				backendVersion = h.Version
			}

			fmt.Printf("vida %s\nbackend %s\n", Version, backendVersion)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI and backend version information")
}
