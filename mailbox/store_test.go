package mailbox

import (
	"context"
	"encoding/base64"
	"fmt"
	"testing"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/sairajiv19/gmail-agent/gmail"
)

// fakeStore implements Store for testing. It records call arguments and
// supports error injection per method.
type sendCall struct {
	raw      string
	threadID string
}

type fakeStore struct {
	// Return values
	listResp []*gmailapi.Message
	messages map[string]*gmailapi.Message
	sendResp *gmailapi.Message

	// Error injection
	listErr error
	getErr  error
	sendErr error

	// Call tracking
	lastQuery  string
	lastMax    int64
	lastFormat gmail.Format
	getCalls   int
	sent       []sendCall
}

func (f *fakeStore) ListMessages(ctx context.Context, query string, maxResults int64) ([]*gmailapi.Message, error) {
	f.lastQuery = query
	f.lastMax = maxResults
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResp, nil
}

func (f *fakeStore) GetMessage(ctx context.Context, id string, format gmail.Format) (*gmailapi.Message, error) {
	f.getCalls++
	f.lastFormat = format
	if f.getErr != nil {
		return nil, f.getErr
	}
	msg, ok := f.messages[id]
	if !ok {
		return nil, fmt.Errorf("no such message: %s", id)
	}
	return msg, nil
}

func (f *fakeStore) SendMessage(ctx context.Context, raw string, threadID string) (*gmailapi.Message, error) {
	f.sent = append(f.sent, sendCall{raw: raw, threadID: threadID})
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	if f.sendResp != nil {
		return f.sendResp, nil
	}
	return &gmailapi.Message{Id: "sent-1", ThreadId: threadID}, nil
}

// b64 encodes body data the way the Gmail API delivers it.
func b64(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func hdr(name, value string) *gmailapi.MessagePartHeader {
	return &gmailapi.MessagePartHeader{Name: name, Value: value}
}

func stub(id string) *gmailapi.Message {
	return &gmailapi.Message{Id: id}
}

// decodeRaw reverses the transport encoding of a sent message.
func decodeRaw(t *testing.T, raw string) string {
	t.Helper()
	b, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		t.Fatalf("sent raw message is not valid base64url: %v", err)
	}
	return string(b)
}
