package mailbox

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/sairajiv19/gmail-agent/gmail"
)

// Reader queries the store and normalizes messages into MessageRecords.
// It holds no state beyond the store and is safe for concurrent use.
type Reader struct {
	store Store
}

// NewReader creates a reader over the given session handle.
func NewReader(store Store) *Reader {
	return &Reader{store: store}
}

// FetchNewest returns the most recent message in the mailbox, body
// included. Returns a not_found error when the mailbox is empty.
func (r *Reader) FetchNewest(ctx context.Context) (*MessageRecord, error) {
	return r.fetchFirst(ctx, "")
}

// FetchByQuery returns the newest message matching the Gmail search
// expression (e.g. "from:amazon.com" or "subject:Invoice"). The
// not_found error carries the query so the caller can narrate it.
func (r *Reader) FetchByQuery(ctx context.Context, query string) (*MessageRecord, error) {
	return r.fetchFirst(ctx, query)
}

func (r *Reader) fetchFirst(ctx context.Context, query string) (*MessageRecord, error) {
	stubs, err := r.store.ListMessages(ctx, query, 1)
	if err != nil {
		return nil, remote("failed to query mailbox", err)
	}
	if len(stubs) == 0 {
		return nil, notFound(query)
	}

	msg, err := r.store.GetMessage(ctx, stubs[0].Id, gmail.FormatFull)
	if err != nil {
		return nil, remote(fmt.Sprintf("failed to fetch message %s", stubs[0].Id), err)
	}

	rec := &MessageRecord{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Subject:  headerOr(payloadHeaders(msg), "Subject", NoSubject),
		From:     headerOr(payloadHeaders(msg), "From", Unknown),
		Date:     headerOr(payloadHeaders(msg), "Date", Unknown),
	}

	// A missing or broken body must not prevent metadata from being
	// returned; degrade to an empty body and record why.
	body, err := extractBody(msg.Payload)
	if err != nil {
		slog.Warn("failed to decode message body", "id", msg.Id, "error", err)
		rec.DecodeError = err.Error()
	}
	rec.Body = body

	return rec, nil
}

// ListByQuery returns lightweight records (no body) for up to maxResults
// messages matching the query, newest first as returned by the store.
// Zero matches yield an empty slice, not an error. Only the first page is
// fetched; callers paging large mailboxes must narrow the query.
func (r *Reader) ListByQuery(ctx context.Context, query string, maxResults int64) ([]MessageRecord, error) {
	stubs, err := r.store.ListMessages(ctx, query, maxResults)
	if err != nil {
		return nil, remote("failed to query mailbox", err)
	}

	// The list response carries only ids, so each message needs a second
	// metadata fetch for its headers, labels and snippet.
	records := make([]MessageRecord, 0, len(stubs))
	for _, stub := range stubs {
		msg, err := r.store.GetMessage(ctx, stub.Id, gmail.FormatMetadata)
		if err != nil {
			return nil, remote(fmt.Sprintf("failed to fetch metadata for message %s", stub.Id), err)
		}

		headers := payloadHeaders(msg)
		records = append(records, MessageRecord{
			ID:       stub.Id,
			ThreadID: msg.ThreadId,
			Subject:  headerOr(headers, "Subject", NoSubject),
			From:     headerOr(headers, "From", Unknown),
			Date:     headerOr(headers, "Date", Unknown),
			Labels:   msg.LabelIds,
			Snippet:  msg.Snippet,
		})
	}

	return records, nil
}

// ResolveIdentifier finds the newest message matching a search expression
// and returns its identifiers plus sender and date. Used when the caller
// has a description of a message rather than its opaque id.
func (r *Reader) ResolveIdentifier(ctx context.Context, query string) (*MessageRecord, error) {
	stubs, err := r.store.ListMessages(ctx, query, 1)
	if err != nil {
		return nil, remote("failed to query mailbox", err)
	}
	if len(stubs) == 0 {
		return nil, notFound(query)
	}

	msg, err := r.store.GetMessage(ctx, stubs[0].Id, gmail.FormatMetadata)
	if err != nil {
		return nil, remote(fmt.Sprintf("failed to fetch metadata for message %s", stubs[0].Id), err)
	}

	headers := payloadHeaders(msg)
	return &MessageRecord{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		From:     headerOr(headers, "From", Unknown),
		Date:     headerOr(headers, "Date", Unknown),
	}, nil
}

// payloadHeaders is a nil-safe accessor for a message's header list.
func payloadHeaders(msg *gmailapi.Message) []*gmailapi.MessagePartHeader {
	if msg == nil || msg.Payload == nil {
		return nil
	}
	return msg.Payload.Headers
}

// headerValue looks up a header case-insensitively.
func headerValue(headers []*gmailapi.MessagePartHeader, name string) (string, bool) {
	for _, h := range headers {
		if h != nil && strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

func headerOr(headers []*gmailapi.MessagePartHeader, name, fallback string) string {
	if v, ok := headerValue(headers, name); ok {
		return v
	}
	return fallback
}

// extractBody returns the decoded plain-text body of a message payload.
// Multi-part messages yield the first text/plain part; other parts (HTML,
// attachments) are ignored. A message without parts falls back to the
// top-level body data. No body at all yields "".
func extractBody(payload *gmailapi.MessagePart) (string, error) {
	if payload == nil {
		return "", nil
	}

	if len(payload.Parts) > 0 {
		for _, part := range payload.Parts {
			if part == nil || part.MimeType != "text/plain" {
				continue
			}
			if part.Body == nil || part.Body.Data == "" {
				return "", nil
			}
			return decodeBody(part.Body.Data)
		}
		return "", nil
	}

	if payload.Body != nil && payload.Body.Data != "" {
		return decodeBody(payload.Body.Data)
	}

	return "", nil
}

// decodeBody decodes Gmail's base64url body data, which may arrive with
// or without padding.
func decodeBody(data string) (string, error) {
	b, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		b, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return "", &Error{Kind: KindDecodeFailure, Msg: "body data is not valid base64url", Err: err}
		}
	}
	return string(b), nil
}
