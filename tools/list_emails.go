package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ListEmailsHandler creates a handler listing message metadata, newest
// first. Only the first result page is returned; the agent narrows the
// query instead of paginating.
func ListEmailsHandler(reader MailReader) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		// Query is optional; empty lists the mailbox unfiltered.
		query, _ := args["query"].(string)

		maxResults := int64(defaultListResults)
		if v, ok := args["max_results"].(float64); ok {
			maxResults = clampListResults(v)
		}

		records, err := reader.ListByQuery(ctx, query, maxResults)
		if err != nil {
			return domainError(err), nil
		}

		payload := map[string]interface{}{
			"count":  len(records),
			"emails": records,
		}
		if query != "" {
			payload["query"] = query
		}

		return statusResult(payload)
	}
}
