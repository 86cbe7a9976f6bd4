package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// registerTools registers the content and diff tools with the MCP server.
func (s *Server) registerTools() error {
	s.mcpServer.AddTool(
		mcp.NewTool("content-get",
			mcp.WithDescription("Read the current document content and history state"),
		),
		s.handleContentGet,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("content-set",
			mcp.WithDescription("Replace the current document content; commits a snapshot only when auto_commit is enabled"),
			mcp.WithString("text", mcp.Required(),
				mcp.Description("Full replacement document content"),
			),
		),
		s.handleContentSet,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("content-commit",
			mcp.WithDescription("Commit the current content as a new undoable snapshot"),
		),
		s.handleContentCommit,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("content-undo",
			mcp.WithDescription("Undo the most recent commit; no-op when there is nothing to undo"),
		),
		s.handleContentUndo,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("content-redo",
			mcp.WithDescription("Redo the most recently undone commit; no-op when there is nothing to redo"),
		),
		s.handleContentRedo,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("diff-preview",
			mcp.WithDescription("Show the diff between the last committed snapshot and the current content"),
			mcp.WithNumber("context",
				mcp.Description("Context lines around each change (default 3)"),
			),
			mcp.WithBoolean("unified",
				mcp.Description("Render a unified diff instead of side-by-side blocks"),
			),
		),
		s.handleDiffPreview,
	)

	return nil
}
