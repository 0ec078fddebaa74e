package tools

import (
	"encoding/json"
	"fmt"
	"net/mail"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sairajiv19/gmail-agent/mailbox"
)

// statusResult marshals a success payload with the status discriminator
// the agent branches on.
func statusResult(payload map[string]interface{}) (*mcp.CallToolResult, error) {
	payload["status"] = "success"

	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to format response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// domainError converts a mailbox failure into an MCP error result,
// keeping the taxonomy kind visible so the agent can narrate it.
func domainError(err error) *mcp.CallToolResult {
	if kind := mailbox.ErrKind(err); kind != "" {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", kind, err))
	}
	return mcp.NewToolResultError(err.Error())
}

// parseAddressList extracts a string or []interface{} argument into a validated email address list.
// Returns a non-nil error if the value is present but invalid.
func parseAddressList(args map[string]interface{}, key string) ([]string, error) {
	val, ok := args[key]
	if !ok || val == nil {
		return nil, nil
	}

	var raw []string
	switch v := val.(type) {
	case string:
		if v != "" {
			raw = []string{v}
		}
	case []interface{}:
		for _, item := range v {
			if str, ok := item.(string); ok && str != "" {
				raw = append(raw, str)
			}
		}
	default:
		return nil, fmt.Errorf("%s must be a string or array of strings", key)
	}

	// Validate each address
	for _, addr := range raw {
		if _, err := mail.ParseAddress(addr); err != nil {
			return nil, fmt.Errorf("invalid %s email address '%s': %v", key, addr, err)
		}
	}

	return raw, nil
}

// validateRecipients accepts a single address or a comma-joined list, as
// the send operation does.
func validateRecipients(to string) error {
	if _, err := mail.ParseAddressList(to); err != nil {
		return fmt.Errorf("invalid to address '%s': %v", to, err)
	}
	return nil
}
