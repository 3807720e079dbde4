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

var chatHistory bool

// chatCmd represents the chat command for the biblical AI assistant.
// Without flags it sends a single message and prints the assistant's reply
// with its biblical citations; with --history it prints the conversation so far.
var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask the biblical AI assistant",
	Long: `The chat command talks to the biblical AI assistant. Pass your question
as an argument to get an answer grounded in scripture, with citations for
every biblical reference the assistant uses.

Use --history to print the conversation history instead of sending a message.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, client, ok, err := requireAuth(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		if chatHistory {
			history, err := client.Messages(ctx, api.DefaultConversationID)
			if err != nil {
				return presentAPIError(mgr, client, err)
			}
			if len(history.Messages) == 0 {
				pterm.Println("No messages yet. Ask something with 'vida chat \"...\"'")
				return nil
			}
			for _, msg := range history.Messages {
				printChatMessage(msg)
			}
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("a message is required (or use --history)")
		}
		content := strings.TrimSpace(strings.Join(args, " "))
		if content == "" {
			return fmt.Errorf("a message is required (or use --history)")
		}

		stopSpinner := startInlineSpinner(os.Stdout, "Searching the scriptures")
		reply, err := client.SendMessage(ctx, api.DefaultConversationID, content)
		stopSpinner()
		if err != nil {
			return presentAPIError(mgr, client, err)
		}

		printChatMessage(reply.AssistantMessage)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().BoolVar(&chatHistory, "history", false, "Show the conversation history")
}

// printChatMessage renders one message with a role prefix and its citations.
func printChatMessage(msg api.ChatMessage) {
	switch msg.Role {
	case "assistant":
		pterm.Printf("%s %s\n", pterm.Cyan("✝"), msg.Content)
	default:
		pterm.Printf("%s %s\n", pterm.Gray("you:"), msg.Content)
	}
	if len(msg.Citations) > 0 {
		refs := make([]string, 0, len(msg.Citations))
		for _, c := range msg.Citations {
			refs = append(refs, c.Reference)
		}
		pterm.Println(pterm.Gray("   📖 " + strings.Join(refs, " · ")))
	}
	pterm.Println()
}
