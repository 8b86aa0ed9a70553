package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"inboxassist/internal/domain/inbox"
)

// InboxRouteTool handles the inbox_route MCP tool.
type InboxRouteTool struct{}

func NewInboxRouteTool() *InboxRouteTool {
	return &InboxRouteTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *InboxRouteTool) Definition() mcp.Tool {
	return mcp.NewTool("inbox_route",
		mcp.WithDescription(
			"Classify an incoming request and draft a response. "+
				"Types: decision_needed / delegate / info_only / control_check.",
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Incoming message text"),
		),
		mcp.WithString("sender",
			mcp.Description("Sender name or role. Defaults to 'Unknown'."),
		),
	)
}

// Handle processes the inbox_route tool call. An empty message is valid and
// routes to info_only.
func (t *InboxRouteTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message := req.GetString("message", "")
	sender := req.GetString("sender", inbox.DefaultSender)

	out, err := json.MarshalIndent(inbox.Route(message, sender), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding route result: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}
