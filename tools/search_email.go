package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// SearchEmailHandler creates a handler returning the newest message
// matching a Gmail search query, body included.
func SearchEmailHandler(reader MailReader) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		query, ok := args["query"].(string)
		if !ok || query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}

		rec, err := reader.FetchByQuery(ctx, query)
		if err != nil {
			return domainError(err), nil
		}

		return statusResult(map[string]interface{}{
			"query": query,
			"email": rec,
		})
	}
}
