package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/ideabox/internal/config"
	"github.com/hpungsan/ideabox/internal/errors"
	"github.com/hpungsan/ideabox/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	repo       *ops.Repository
	cfg        *config.Config
	exportsDir string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(repo *ops.Repository, cfg *config.Config, exportsDir string) *Handlers {
	return &Handlers{repo: repo, cfg: cfg, exportsDir: exportsDir}
}

// AddRequest represents the arguments for idea_add.
type AddRequest struct {
	Text string `json:"text"`
}

// DeleteRequest represents the arguments for idea_delete.
type DeleteRequest struct {
	ID *int64 `json:"id"`
}

// ExportRequest represents the arguments for idea_export.
type ExportRequest struct {
	Path string `json:"path,omitempty"`
}

// ClearRequest represents the arguments for idea_clear.
type ClearRequest struct {
	Confirm bool `json:"confirm"`
}

// HandleAdd handles the idea_add tool call.
func (h *Handlers) HandleAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := h.repo.Add(ctx, input.Text)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the idea_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.repo.ListWithCount(ctx)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the idea_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.ID == nil {
		return errorResult(errors.NewInvalidRequest("id is required")), nil
	}

	result, err := h.repo.DeleteByID(ctx, *input.ID)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExport handles the idea_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := h.repo.WriteExport(ctx, h.cfg, ops.ExportInput{
		Path:       input.Path,
		ExportsDir: h.exportsDir,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleClear handles the idea_clear tool call.
func (h *Handlers) HandleClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ClearRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if !input.Confirm {
		return errorResult(errors.NewNotConfirmed("clear")), nil
	}

	result, err := h.repo.Clear(ctx)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var iErr *errors.IdeaError
	if stderrors.As(err, &iErr) {
		errorObj := map[string]any{
			"code":    iErr.Code,
			"message": iErr.Message,
			"status":  iErr.Status,
		}
		if iErr.Code != errors.ErrInternal && iErr.Details != nil {
			errorObj["details"] = iErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
