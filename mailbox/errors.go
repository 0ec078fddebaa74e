package mailbox

import (
	"errors"
	"fmt"
)

// Kind classifies a mailbox operation failure.
type Kind string

const (
	// KindNotFound means a query or filter matched no messages.
	KindNotFound Kind = "not_found"
	// KindMissingRecipient means a reply target has no usable From header.
	KindMissingRecipient Kind = "missing_recipient"
	// KindDecodeFailure means a body payload was present but undecodable.
	KindDecodeFailure Kind = "decode_failure"
	// KindRemote means the store rejected or failed the call.
	KindRemote Kind = "remote_error"
)

// Error is the failure value returned by mailbox operations. Callers
// branch on Kind via errors.As instead of matching message strings.
type Error struct {
	Kind Kind
	// Query is the search expression that matched nothing (KindNotFound).
	Query string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// ErrKind returns the taxonomy kind of err, or "" for untyped errors.
func ErrKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func notFound(query string) *Error {
	msg := "no emails found"
	if query != "" {
		msg = fmt.Sprintf("no emails found matching query: %s", query)
	}
	return &Error{Kind: KindNotFound, Query: query, Msg: msg}
}

func remote(msg string, err error) *Error {
	return &Error{Kind: KindRemote, Msg: msg, Err: err}
}
