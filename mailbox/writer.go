package mailbox

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"

	"github.com/sairajiv19/gmail-agent/gmail"
)

// replySubjectPrefix is matched literally: lower-case or localized
// prefixes are not recognized and get a second "Re:".
const replySubjectPrefix = "Re:"

// Writer composes and transmits outgoing messages through the store.
// Neither operation is idempotent: repeated calls send repeated mail.
type Writer struct {
	store Store
}

// NewWriter creates a writer over the given session handle.
func NewWriter(store Store) *Writer {
	return &Writer{store: store}
}

// RawMessage is an outbound composition prior to transport encoding. It
// lives only for the duration of one send call.
type RawMessage struct {
	// To may be a single address or a comma-joined list.
	To      string
	CC      []string
	BCC     []string
	Subject string
	Body    string
	// References and InReplyTo carry the original message's global
	// Message-Id on replies.
	References string
	InReplyTo  string
}

// Encode serializes the message to MIME and base64url-encodes the bytes
// for the store's raw send operation. The From header is left to the
// store, which stamps the authenticated user.
func (m *RawMessage) Encode() (string, error) {
	var h mail.Header
	h.SetDate(time.Now())
	h.Set("To", m.To)
	if len(m.CC) > 0 {
		h.Set("Cc", strings.Join(m.CC, ", "))
	}
	if len(m.BCC) > 0 {
		h.Set("Bcc", strings.Join(m.BCC, ", "))
	}
	h.SetSubject(m.Subject)
	if m.References != "" {
		h.Set("References", m.References)
	}
	if m.InReplyTo != "" {
		h.Set("In-Reply-To", m.InReplyTo)
	}
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return "", fmt.Errorf("failed to create message writer: %w", err)
	}
	if _, err := w.Write([]byte(m.Body)); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize message: %w", err)
	}

	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

// SendNew composes and transmits a fresh message with no threading
// headers. cc and bcc lists are normalized to single comma-joined
// header values.
func (w *Writer) SendNew(ctx context.Context, to, subject, body string, cc, bcc []string) (*SendResult, error) {
	msg := &RawMessage{
		To:      to,
		CC:      cc,
		BCC:     bcc,
		Subject: subject,
		Body:    body,
	}
	return w.transmit(ctx, msg, "")
}

// ReplyTo fetches the target message's metadata, derives the reply
// envelope from it, and transmits the reply pinned to the original
// thread. Fails with missing_recipient, before any transmission, when
// the original has no From header.
func (w *Writer) ReplyTo(ctx context.Context, messageID, replyText string) (*SendResult, error) {
	orig, err := w.store.GetMessage(ctx, messageID, gmail.FormatMetadata)
	if err != nil {
		return nil, remote(fmt.Sprintf("failed to fetch message %s", messageID), err)
	}

	headers := payloadHeaders(orig)

	to, ok := headerValue(headers, "From")
	if !ok || to == "" {
		return nil, &Error{Kind: KindMissingRecipient, Msg: "could not determine recipient address"}
	}

	subject := headerOr(headers, "Subject", NoSubject)
	if !strings.HasPrefix(subject, replySubjectPrefix) {
		subject = replySubjectPrefix + " " + subject
	}

	msg := &RawMessage{
		To:      to,
		Subject: subject,
		Body:    replyText,
	}
	if ref, ok := headerValue(headers, "Message-Id"); ok && ref != "" {
		msg.References = ref
		msg.InReplyTo = ref
	}

	return w.transmit(ctx, msg, orig.ThreadId)
}

func (w *Writer) transmit(ctx context.Context, msg *RawMessage, threadID string) (*SendResult, error) {
	raw, err := msg.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode outgoing message: %w", err)
	}

	sent, err := w.store.SendMessage(ctx, raw, threadID)
	if err != nil {
		return nil, remote("failed to send message", err)
	}

	return &SendResult{MessageID: sent.Id, ThreadID: sent.ThreadId}, nil
}
