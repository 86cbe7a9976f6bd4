package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/drafter/internal/diff"
	"github.com/mark3labs/drafter/internal/hooks"
	"github.com/mark3labs/drafter/internal/logger"
	"github.com/mark3labs/mcp-go/mcp"
)

const defaultContextLines = 3

// handleContentGet returns the current content and history state.
func (s *Server) handleContentGet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view := s.sess.History()
	result := fmt.Sprintf("past=%d future=%d\n%s", view.PastLen, view.FutureLen, view.Content)
	return mcp.NewToolResultText(result), nil
}

// handleContentSet replaces the current content as a live, uncommitted edit.
func (s *Server) handleContentSet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultText("error: no arguments provided"), nil
	}

	text, ok := args["text"].(string)
	if !ok {
		return mcp.NewToolResultText("error: missing 'text' parameter"), nil
	}

	view, err := s.store.SetContent(ctx, s.sess, text)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}

	if s.autoCommit {
		result, err := s.commitAndRunHook(ctx)
		if err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Content updated (%d bytes)\n%s", len(view.Content), result)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Content updated (%d bytes, uncommitted)", len(view.Content))), nil
}

// handleContentCommit commits the current content and runs the post-commit
// hook if one is configured.
func (s *Server) handleContentCommit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.commitAndRunHook(ctx)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) commitAndRunHook(ctx context.Context) (string, error) {
	view, err := s.store.Commit(ctx, s.sess)
	if err != nil {
		return "", err
	}

	result := fmt.Sprintf("Committed snapshot %d (redo history cleared)", view.PastLen)

	if s.hooksCfg != nil && s.hooksCfg.Hooks.PostCommit != nil {
		vars := hooks.Variables{
			Session:  s.sess.Name,
			Revision: fmt.Sprintf("%d", view.PastLen),
		}
		out, err := hooks.Execute(ctx, s.hooksCfg.Hooks.PostCommit, s.workDir, vars)
		if err != nil {
			logger.Warn("Post-commit hook interrupted: %v", err)
		} else if out != "" {
			result += "\n[post_commit]\n" + out
		}
	}

	return result, nil
}

// handleContentUndo steps the history back one commit.
func (s *Server) handleContentUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	before := s.sess.History()
	view, err := s.store.Undo(ctx, s.sess)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}

	if before.PastLen == 0 {
		return mcp.NewToolResultText("Nothing to undo"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Undone: past=%d future=%d", view.PastLen, view.FutureLen)), nil
}

// handleContentRedo steps the history forward one undone commit.
func (s *Server) handleContentRedo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	before := s.sess.History()
	view, err := s.store.Redo(ctx, s.sess)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}

	if before.FutureLen == 0 {
		return mcp.NewToolResultText("Nothing to redo"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Redone: past=%d future=%d", view.PastLen, view.FutureLen)), nil
}

// handleDiffPreview diffs the last committed snapshot against the current
// content.
func (s *Server) handleDiffPreview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	old, ok := s.sess.LastSnapshot()
	if !ok {
		return mcp.NewToolResultText("No committed snapshot to diff against"), nil
	}
	current := s.sess.Content()

	contextLines := defaultContextLines
	args := request.GetArguments()
	if v, ok := args["context"].(float64); ok && v >= 0 {
		contextLines = int(v)
	}
	unified := false
	if v, ok := args["unified"].(bool); ok {
		unified = v
	}

	if old == current {
		return mcp.NewToolResultText("No changes since last commit"), nil
	}

	if unified {
		out, err := diff.UnifiedContext("committed", "current", old, current, contextLines)
		if err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
		}
		return mcp.NewToolResultText(out), nil
	}

	hunks := diff.ComputeHunks(old, current)
	blocks := diff.BuildInlineBlocks(hunks, contextLines)
	if len(blocks) == 0 {
		return mcp.NewToolResultText("No changes since last commit"), nil
	}
	return mcp.NewToolResultText(diff.FormatBlocks(blocks)), nil
}
