package tools

import (
	"context"

	"github.com/sairajiv19/gmail-agent/mailbox"
)

// MailReader defines the read-only mailbox operations. The concrete
// *mailbox.Reader satisfies this.
type MailReader interface {
	FetchNewest(ctx context.Context) (*mailbox.MessageRecord, error)
	FetchByQuery(ctx context.Context, query string) (*mailbox.MessageRecord, error)
	ListByQuery(ctx context.Context, query string, maxResults int64) ([]mailbox.MessageRecord, error)
	ResolveIdentifier(ctx context.Context, query string) (*mailbox.MessageRecord, error)
}

// MailSender defines the transmitting operations. The concrete
// *mailbox.Writer satisfies this.
type MailSender interface {
	SendNew(ctx context.Context, to, subject, body string, cc, bcc []string) (*mailbox.SendResult, error)
	ReplyTo(ctx context.Context, messageID, replyText string) (*mailbox.SendResult, error)
}
