package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/drafter/internal/config"
	"github.com/mark3labs/drafter/internal/diff"
	"github.com/mark3labs/drafter/internal/state"
	"github.com/spf13/cobra"
)

var diffFlags struct {
	context   int
	unified   bool
	savePrefs bool
}

var diffCmd = &cobra.Command{
	Use:   "diff OLD NEW",
	Short: "Diff two content files",
	Long: `Diff two content files and print the changes grouped into
context-padded blocks (the default) or as a unified diff.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().IntVarP(&diffFlags.context, "context", "c", -1, "Context lines around each change (default from prefs)")
	diffCmd.Flags().BoolVarP(&diffFlags.unified, "unified", "u", false, "Render a unified diff")
	diffCmd.Flags().BoolVar(&diffFlags.savePrefs, "save-prefs", false, "Save the chosen rendering options as preferences")
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	prefs := state.Load(cfg.DataDir)
	contextLines := prefs.Diff.ContextLines
	if cmd.Flags().Changed("context") {
		if diffFlags.context < 0 {
			return fmt.Errorf("context must be >= 0, got %d", diffFlags.context)
		}
		contextLines = diffFlags.context
	}
	unified := prefs.Diff.Unified
	if cmd.Flags().Changed("unified") {
		unified = diffFlags.unified
	}

	oldBytes, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	newBytes, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[1], err)
	}
	oldContent, newContent := string(oldBytes), string(newBytes)

	if diffFlags.savePrefs {
		prefs.Diff.ContextLines = contextLines
		prefs.Diff.Unified = unified
		if err := state.Save(cfg.DataDir, prefs); err != nil {
			return err
		}
	}

	if oldContent == newContent {
		return nil
	}

	if unified {
		out, err := diff.UnifiedContext(args[0], args[1], oldContent, newContent, contextLines)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	}

	hunks := diff.ComputeHunks(oldContent, newContent)
	blocks := diff.BuildInlineBlocks(hunks, contextLines)
	fmt.Print(diff.FormatBlocks(blocks))
	return nil
}
