package mailbox

import (
	"fmt"
	"io"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// This file is the response-normalization boundary: every raw protocol
// response is unified into the canonical structures here, so
// server-representation variance never leaks into downstream code.
// Fetch responses arrive as a stream of typed items; collecting over
// that tagged union is the single canonical key space.

// normalizeList converts raw LIST responses into mailbox snapshots.
func normalizeList(raw []*imap.ListData) []MailboxInfo {
	out := make([]MailboxInfo, 0, len(raw))
	for _, mbox := range raw {
		info := MailboxInfo{
			Name:  mbox.Mailbox,
			Flags: make([]string, 0, len(mbox.Attrs)),
		}
		if mbox.Delim != 0 {
			info.Delimiter = string(mbox.Delim)
		}
		for _, attr := range mbox.Attrs {
			info.Flags = append(info.Flags, string(attr))
		}
		out = append(out, info)
	}
	return out
}

// collectSummary drains one fetch response message into a
// MessageSummary. Optional items the server omitted (size, internal
// date) stay nil rather than defaulting to zero. Unconsumed body
// literals are drained to keep the IMAP stream in sync.
func collectSummary(msg *imapclient.FetchMessageData, mbox string) (MessageSummary, error) {
	summary := MessageSummary{Mailbox: mbox}

	for {
		item := msg.Next()
		if item == nil {
			break
		}

		switch data := item.(type) {
		case imapclient.FetchItemDataUID:
			summary.UID = uint32(data.UID)
		case imapclient.FetchItemDataFlags:
			for _, f := range data.Flags {
				summary.Flags = append(summary.Flags, string(f))
			}
		case imapclient.FetchItemDataRFC822Size:
			size := data.Size
			summary.Size = &size
		case imapclient.FetchItemDataInternalDate:
			t := data.Time
			summary.InternalDate = &t
		case imapclient.FetchItemDataEnvelope:
			summary.Envelope = normalizeEnvelope(data.Envelope)
		case imapclient.FetchItemDataBodySection:
			drainLiteral(data.Literal)
		}
	}

	if summary.UID == 0 {
		return summary, fmt.Errorf("fetch response missing UID")
	}
	return summary, nil
}

// normalizeEnvelope converts an IMAP envelope into the canonical
// summary form. A nil envelope normalizes to the zero value; the
// caller keeps its empty-but-present semantics.
func normalizeEnvelope(env *imap.Envelope) Envelope {
	var out Envelope
	if env == nil {
		return out
	}

	if !env.Date.IsZero() {
		d := env.Date
		out.Date = &d
	}
	out.Subject = env.Subject
	out.MessageID = env.MessageID
	for _, addr := range env.From {
		out.From = append(out.From, formatAddress(addr))
	}
	for _, addr := range env.To {
		out.To = append(out.To, formatAddress(addr))
	}
	for _, addr := range env.Cc {
		out.Cc = append(out.Cc, formatAddress(addr))
	}
	return out
}

// formatAddress formats an IMAP address as "Name <user@host>" or
// just "user@host" if no name is set.
func formatAddress(addr imap.Address) string {
	email := addr.Addr()
	if addr.Name != "" {
		return fmt.Sprintf("%s <%s>", addr.Name, email)
	}
	return email
}

// drainLiteral reads and discards the contents of an IMAP literal
// reader. This prevents blocking the IMAP stream when a body section
// is fetched but not consumed. Nil readers are handled gracefully.
func drainLiteral(r imap.LiteralReader) {
	if r == nil {
		return
	}
	_, _ = io.Copy(io.Discard, r)
}
