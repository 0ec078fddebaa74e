// Package gmail wraps the Gmail REST API behind the narrow surface the
// mailbox layer needs: list messages by query, get one message at a chosen
// detail level, and send a raw message.
package gmail

import (
	"context"
	"errors"
	"fmt"

	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
)

// Format selects how much of a message the store returns.
type Format string

const (
	// FormatMetadata returns headers, labels, snippet and thread id, but
	// no body or parts.
	FormatMetadata Format = "metadata"
	// FormatFull additionally returns the payload with parts and body data.
	FormatFull Format = "full"
)

// Client is an authenticated handle to one user's mailbox. It carries no
// state beyond credentials and may be shared by concurrent callers.
type Client struct {
	svc  *gmailapi.Service
	user string
}

// NewClient wraps an authenticated Gmail service for the given user id
// ("me" for the token's owner).
func NewClient(svc *gmailapi.Service, user string) *Client {
	return &Client{svc: svc, user: user}
}

// ListMessages returns up to maxResults message stubs (id and thread id
// only) matching the Gmail search query, newest first. An empty query
// lists the mailbox unfiltered. Only the first page is fetched.
func (c *Client) ListMessages(ctx context.Context, query string, maxResults int64) ([]*gmailapi.Message, error) {
	call := c.svc.Users.Messages.List(c.user).MaxResults(maxResults)
	if query != "" {
		call = call.Q(query)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, apiError("list messages", err)
	}
	return resp.Messages, nil
}

// GetMessage fetches a single message by its store-assigned id.
func (c *Client) GetMessage(ctx context.Context, id string, format Format) (*gmailapi.Message, error) {
	msg, err := c.svc.Users.Messages.Get(c.user, id).Format(string(format)).Context(ctx).Do()
	if err != nil {
		return nil, apiError(fmt.Sprintf("get message %s", id), err)
	}
	return msg, nil
}

// SendMessage transmits a base64url-encoded MIME message. A non-empty
// threadID pins the sent message to an existing thread so the store
// groups it with prior messages.
func (c *Client) SendMessage(ctx context.Context, raw string, threadID string) (*gmailapi.Message, error) {
	msg := &gmailapi.Message{Raw: raw}
	if threadID != "" {
		msg.ThreadId = threadID
	}

	sent, err := c.svc.Users.Messages.Send(c.user, msg).Context(ctx).Do()
	if err != nil {
		return nil, apiError("send message", err)
	}
	return sent, nil
}

// apiError surfaces the HTTP status of Gmail API failures so auth and
// quota problems are recognizable in logs and tool results.
func apiError(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return fmt.Errorf("%s: Gmail API returned HTTP %d: %w", op, gerr.Code, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
