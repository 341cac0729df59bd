package mailbox

import "time"

// MailboxInfo is an immutable snapshot of one folder from a listing
// call.
type MailboxInfo struct {
	// Name is the full mailbox name (e.g., "INBOX", "Archive/2024").
	Name string `json:"name"`

	// Delimiter is the hierarchy delimiter, or "" when the server
	// reports none.
	Delimiter string `json:"delimiter"`

	// Flags contains IMAP mailbox attributes (e.g., \Noselect, \HasChildren).
	Flags []string `json:"flags"`

	// Messages and Unseen are STATUS counters. Nil when the mailbox is
	// not selectable or the server did not report them.
	Messages *uint32 `json:"messages,omitempty"`
	Unseen   *uint32 `json:"unseen,omitempty"`
}

// Envelope is the structured header summary returned by search without
// fetching message bodies.
type Envelope struct {
	// Date is the message's Date header. Nil when the envelope omits it.
	Date *time.Time `json:"date"`

	// Subject is the decoded subject line.
	Subject string `json:"subject"`

	// From, To, and Cc are formatted as "Name <addr>" or bare addresses.
	From []string `json:"from"`
	To   []string `json:"to"`
	Cc   []string `json:"cc"`

	// MessageID is the Message-ID header value.
	MessageID string `json:"message_id"`
}

// MessageSummary is one search result. The UID plus mailbox pair
// uniquely identifies the message for the lifetime of the session; UIDs
// are never reused within a mailbox, unlike sequence numbers.
type MessageSummary struct {
	UID      uint32   `json:"uid"`
	Mailbox  string   `json:"mailbox"`
	Envelope Envelope `json:"envelope"`

	// Flags is the server-reported flag set. Order is not meaningful.
	Flags []string `json:"flags"`

	// Size and InternalDate are nil when the server omits them, which
	// keeps "unknown" distinguishable from zero.
	Size         *int64     `json:"size_bytes"`
	InternalDate *time.Time `json:"internaldate"`
}

// AttachmentDescriptor describes one attachment part found during a
// parse. The part path is an internal locator for a later extraction
// call against the same UID; it is never exposed as a stable ID.
type AttachmentDescriptor struct {
	// Filename is the decoded attachment filename. MIME allows unnamed
	// parts, so it may be empty.
	Filename string `json:"filename"`

	// ContentType is the part's media type (e.g., "application/pdf").
	ContentType string `json:"content_type"`

	// Size is the decoded size in bytes.
	Size int64 `json:"size_bytes"`

	// PartPath is the IMAP body part path (e.g., [2] or [2, 1]).
	PartPath []int `json:"-"`

	// Encoding is the part's Content-Transfer-Encoding, needed to
	// decode a re-fetched raw part body.
	Encoding string `json:"-"`
}

// ParsedMessage is the result of fetching and parsing one message.
// It is derived per call and never persisted.
type ParsedMessage struct {
	UID     uint32 `json:"uid"`
	Mailbox string `json:"mailbox"`

	// Headers is a fixed subset (subject, from, to, cc, date,
	// message_id) with "" for anything absent.
	Headers map[string]string `json:"headers"`

	Flags        []string   `json:"flags"`
	Size         *int64     `json:"size_bytes"`
	InternalDate *time.Time `json:"internaldate"`

	Attachments []AttachmentDescriptor `json:"attachments"`

	// Text and HTML are the accumulated body parts, truncated per part
	// against the caller's character budget. A message with several
	// parts each under the budget can therefore exceed it in total.
	Text string `json:"text,omitempty"`
	HTML string `json:"html,omitempty"`
}

// validFlags maps user-facing flag names to IMAP flag strings.
var validFlags = map[string]string{
	"seen":     `\Seen`,
	"flagged":  `\Flagged`,
	"answered": `\Answered`,
}

// ValidFlag reports whether the given flag name is supported and returns
// the corresponding IMAP flag string.
func ValidFlag(name string) (string, bool) {
	f, ok := validFlags[name]
	return f, ok
}
