package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/drafter/internal/logger"
	"github.com/spf13/cobra"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "drafter",
	Short: "AI-assisted site-content editor with versioned history",
	Long: `drafter is the content versioning core of an AI-assisted site editor.

It keeps document content in an undo/redo snapshot history persisted via
embedded NATS JetStream, reconciles streaming AI replies into the session
chat, and renders line-based diffs for change review. AI agents drive edits
through an embedded MCP tool server.`,
}

func init() {
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(sessionsCmd)
}
