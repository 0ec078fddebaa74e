package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReplyEmailHandler creates a handler for replying to an existing email.
// The reply is addressed to the original sender, keeps the thread, and
// carries References/In-Reply-To when the original exposes a Message-ID.
func ReplyEmailHandler(sender MailSender) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		emailID, ok := args["email_id"].(string)
		if !ok || emailID == "" {
			return mcp.NewToolResultError("email_id is required"), nil
		}
		if err := validateEmailID(emailID); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		replyText, ok := args["reply_text"].(string)
		if !ok || replyText == "" {
			return mcp.NewToolResultError("reply_text is required"), nil
		}
		if err := validateBodySize(replyText); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := sender.ReplyTo(ctx, emailID, replyText)
		if err != nil {
			return domainError(err), nil
		}

		return statusResult(map[string]interface{}{
			"message":    "Reply sent successfully",
			"message_id": result.MessageID,
			"thread_id":  result.ThreadID,
		})
	}
}
