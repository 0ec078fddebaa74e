package tools

import (
	"context"
	"fmt"

	"github.com/sairajiv19/gmail-agent/mailbox"
)

// MockMailReader implements MailReader for testing.
type MockMailReader struct {
	// Return values
	Record  *mailbox.MessageRecord
	Records []mailbox.MessageRecord

	// Error injection
	Err error

	// Call tracking
	LastMethod string
	LastQuery  string
	LastMax    int64
	CallCount  int
}

func (m *MockMailReader) FetchNewest(ctx context.Context) (*mailbox.MessageRecord, error) {
	m.LastMethod = "FetchNewest"
	m.CallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Record, nil
}

func (m *MockMailReader) FetchByQuery(ctx context.Context, query string) (*mailbox.MessageRecord, error) {
	m.LastMethod = "FetchByQuery"
	m.LastQuery = query
	m.CallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Record, nil
}

func (m *MockMailReader) ListByQuery(ctx context.Context, query string, maxResults int64) ([]mailbox.MessageRecord, error) {
	m.LastMethod = "ListByQuery"
	m.LastQuery = query
	m.LastMax = maxResults
	m.CallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records, nil
}

func (m *MockMailReader) ResolveIdentifier(ctx context.Context, query string) (*mailbox.MessageRecord, error) {
	m.LastMethod = "ResolveIdentifier"
	m.LastQuery = query
	m.CallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Record, nil
}

// MockMailSender implements MailSender for testing.
type MockMailSender struct {
	Result *mailbox.SendResult
	Err    error

	LastMethod    string
	LastTo        string
	LastSubject   string
	LastBody      string
	LastCC        []string
	LastBCC       []string
	LastMessageID string
	LastReplyText string
	CallCount     int
}

func (m *MockMailSender) SendNew(ctx context.Context, to, subject, body string, cc, bcc []string) (*mailbox.SendResult, error) {
	m.LastMethod = "SendNew"
	m.LastTo = to
	m.LastSubject = subject
	m.LastBody = body
	m.LastCC = cc
	m.LastBCC = bcc
	m.CallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

func (m *MockMailSender) ReplyTo(ctx context.Context, messageID, replyText string) (*mailbox.SendResult, error) {
	m.LastMethod = "ReplyTo"
	m.LastMessageID = messageID
	m.LastReplyText = replyText
	m.CallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// newErrReader returns a reader mock with an untyped error pre-configured
func newErrReader(msg string) *MockMailReader {
	return &MockMailReader{Err: fmt.Errorf("%s", msg)}
}
