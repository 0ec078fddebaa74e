// Package mailbox normalizes Gmail's nested message representation into
// flat records and composes threaded outgoing mail. It is the core the
// tool layer calls into; all remote access goes through the injected
// Store so tests can substitute a fake.
package mailbox

import (
	"context"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/sairajiv19/gmail-agent/gmail"
)

// Header sentinels used when a message lacks the corresponding header.
const (
	NoSubject = "No Subject"
	Unknown   = "Unknown"
)

// Store is the authenticated session handle the reader and writer operate
// through. *gmail.Client satisfies it.
type Store interface {
	ListMessages(ctx context.Context, query string, maxResults int64) ([]*gmailapi.Message, error)
	GetMessage(ctx context.Context, id string, format gmail.Format) (*gmailapi.Message, error)
	SendMessage(ctx context.Context, raw string, threadID string) (*gmailapi.Message, error)
}

// MessageRecord is the flattened form of one mailbox message. It is built
// fresh per read call and never mutated afterwards.
type MessageRecord struct {
	ID       string `json:"id"`
	ThreadID string `json:"thread_id,omitempty"`
	Subject  string `json:"subject,omitempty"`
	From     string `json:"from"`
	Date     string `json:"date"`
	// Body is the decoded plain-text content; empty when the message has
	// no plain-text part.
	Body string `json:"body,omitempty"`
	// Labels and Snippet are populated by listing operations only.
	Labels  []string `json:"labels,omitempty"`
	Snippet string   `json:"snippet,omitempty"`
	// DecodeError distinguishes "body present but undecodable" from "no
	// body in source". The rest of the record is still valid.
	DecodeError string `json:"decode_error,omitempty"`
}

// SendResult reports a successful transmission.
type SendResult struct {
	MessageID string `json:"message_id"`
	ThreadID  string `json:"thread_id,omitempty"`
}
