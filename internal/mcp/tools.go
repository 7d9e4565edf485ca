package mcp

import "github.com/mark3labs/mcp-go/mcp"

var addToolDef = mcp.NewTool("idea_add",
	mcp.WithDescription("Capture a new idea. Text is trimmed; blank text is rejected with EMPTY_INPUT. The new idea is placed first in the list."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Idea text"),
	),
)

var listToolDef = mcp.NewTool("idea_list",
	mcp.WithDescription("List all stored ideas, newest first, with a count."),
)

var deleteToolDef = mcp.NewTool("idea_delete",
	mcp.WithDescription("Delete the idea with the given id. An unknown id is a no-op reporting removed=0."),
	mcp.WithNumber("id",
		mcp.Required(),
		mcp.Description("Idea id (epoch milliseconds at creation)"),
	),
)

var exportToolDef = mcp.NewTool("idea_export",
	mcp.WithDescription("Export all ideas as a plain-text document. Fails with NOTHING_TO_EXPORT when the list is empty."),
	mcp.WithString("path",
		mcp.Description("Destination .txt file (default: ~/.ideabox/exports/ideas-<millis>.txt)"),
	),
)

var clearToolDef = mcp.NewTool("idea_clear",
	mcp.WithDescription("Delete all ideas. This cannot be undone; requires confirm=true."),
	mcp.WithBoolean("confirm",
		mcp.Required(),
		mcp.Description("Must be true to clear the list"),
	),
)
