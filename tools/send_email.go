package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// SendEmailHandler creates a handler for sending a new email. Calling it
// twice sends duplicate emails.
func SendEmailHandler(sender MailSender) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		to, ok := args["to"].(string)
		if !ok || to == "" {
			return mcp.NewToolResultError("to is required"), nil
		}
		if err := validateRecipients(to); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		subject, ok := args["subject"].(string)
		if !ok || subject == "" {
			return mcp.NewToolResultError("subject is required"), nil
		}
		if err := validateSubjectSize(subject); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		body, ok := args["body"].(string)
		if !ok || body == "" {
			return mcp.NewToolResultError("body is required"), nil
		}
		if err := validateBodySize(body); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		cc, err := parseAddressList(args, "cc")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		bcc, err := parseAddressList(args, "bcc")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := sender.SendNew(ctx, to, subject, body, cc, bcc)
		if err != nil {
			return domainError(err), nil
		}

		return statusResult(map[string]interface{}{
			"message":    fmt.Sprintf("Email sent successfully to %s", to),
			"message_id": result.MessageID,
			"thread_id":  result.ThreadID,
		})
	}
}
