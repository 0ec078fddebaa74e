package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ResolveEmailIDHandler creates a handler that turns a search query into
// the newest matching message's identifiers. The agent calls this before
// reply_email when the user described a message instead of giving an id.
func ResolveEmailIDHandler(reader MailReader) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		query, ok := args["query"].(string)
		if !ok || query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}

		rec, err := reader.ResolveIdentifier(ctx, query)
		if err != nil {
			return domainError(err), nil
		}

		return statusResult(map[string]interface{}{
			"id":        rec.ID,
			"thread_id": rec.ThreadID,
			"from":      rec.From,
			"date":      rec.Date,
		})
	}
}
