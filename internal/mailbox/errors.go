package mailbox

import "fmt"

// ConnectionError indicates a network-level failure establishing or
// using the IMAP transport (dial, TLS upgrade, timeout). The wrapped
// error carries the underlying cause.
type ConnectionError struct {
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("imap connection to %s failed: %v", e.Addr, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// AuthError indicates the server rejected the supplied credentials.
type AuthError struct {
	Username string
	Err      error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("imap login as %s rejected: %v", e.Username, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// MailboxNotFoundError indicates the requested mailbox does not exist
// or is not selectable in the requested access mode.
type MailboxNotFoundError struct {
	Mailbox string
	Err     error
}

func (e *MailboxNotFoundError) Error() string {
	return fmt.Sprintf("mailbox %q not found or not selectable: %v", e.Mailbox, e.Err)
}

func (e *MailboxNotFoundError) Unwrap() error { return e.Err }

// InvalidDateError indicates a date filter that is not valid
// YYYY-MM-DD text.
type InvalidDateError struct {
	Value string
	Err   error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q (expected YYYY-MM-DD): %v", e.Value, e.Err)
}

func (e *InvalidDateError) Unwrap() error { return e.Err }

// ParseError indicates a raw message payload that could not be
// tokenized as an RFC 822 message at all. Encoding anomalies and
// missing headers are recovered locally and never produce this error.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable message: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MessageNotFoundError indicates the UID does not exist in the
// selected mailbox at operation time. Messages may be expunged by
// other clients between calls.
type MessageNotFoundError struct {
	UID     uint32
	Mailbox string
}

func (e *MessageNotFoundError) Error() string {
	return fmt.Sprintf("no message with UID %d in %s", e.UID, e.Mailbox)
}

// AttachmentNotFoundError indicates an attachment selector (index or
// filename) that matches nothing in the parsed message.
type AttachmentNotFoundError struct {
	Selector string
}

func (e *AttachmentNotFoundError) Error() string {
	return fmt.Sprintf("attachment %s not found", e.Selector)
}
