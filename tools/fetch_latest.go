package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// FetchLatestEmailHandler creates a handler returning the newest message
// in the mailbox, body included.
func FetchLatestEmailHandler(reader MailReader) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rec, err := reader.FetchNewest(ctx)
		if err != nil {
			return domainError(err), nil
		}

		return statusResult(map[string]interface{}{
			"email": rec,
		})
	}
}
