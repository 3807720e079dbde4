// Package main is the entry point for the Vida com Deus CLI application.
// It provides a command-line client for the devotional platform backend.
package main

import (
	"vidadeus/cli/cmd"
)

// main is the entry point for the vida CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
