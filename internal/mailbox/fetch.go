package mailbox

import (
	"fmt"
	"io"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// maxRawMessageSize is the maximum raw RFC822 message size to buffer
// when reading from the IMAP literal. Messages larger than this are
// truncated — the remainder of the literal is drained to keep the IMAP
// stream in sync.
const maxRawMessageSize = 50 * 1024 * 1024

// FetchMessage fetches a single message by UID from the selected
// mailbox and parses it per opts. The body section is fetched with
// PEEK and the mailbox is expected to be selected read-only, so a
// fetch never flips \Seen.
func (s *Session) FetchMessage(uid uint32, opts BodyOptions) (*ParsedMessage, error) {
	uidSet := imap.UIDSet{}
	uidSet.AddNum(imap.UID(uid))

	fetchOpts := &imap.FetchOptions{
		UID:          true,
		Flags:        true,
		RFC822Size:   true,
		InternalDate: true,
		BodySection: []*imap.FetchItemBodySection{
			{Peek: true},
		},
	}

	fetchCmd := s.client.Fetch(uidSet, fetchOpts)

	msg := fetchCmd.Next()
	if msg == nil {
		_ = fetchCmd.Close()
		return nil, &MessageNotFoundError{UID: uid, Mailbox: s.mailbox}
	}

	var (
		rawBody []byte
		flags   []string
		size    *int64
	)
	result := &ParsedMessage{UID: uid, Mailbox: s.mailbox}

	for {
		item := msg.Next()
		if item == nil {
			break
		}

		switch data := item.(type) {
		case imapclient.FetchItemDataUID:
			result.UID = uint32(data.UID)
		case imapclient.FetchItemDataFlags:
			for _, f := range data.Flags {
				flags = append(flags, string(f))
			}
		case imapclient.FetchItemDataRFC822Size:
			n := data.Size
			size = &n
		case imapclient.FetchItemDataInternalDate:
			t := data.Time
			result.InternalDate = &t
		case imapclient.FetchItemDataBodySection:
			// Consume the literal immediately. go-imap/v2 streams data
			// from the IMAP connection; msg.Next() advances past unread
			// literals, so deferring the read would lose the body.
			if data.Literal == nil {
				s.logger.Debug("nil body literal", "uid", uid)
				continue
			}
			var readErr error
			rawBody, readErr = io.ReadAll(io.LimitReader(data.Literal, maxRawMessageSize))
			drainLiteral(data.Literal)
			if readErr != nil {
				s.logger.Debug("error reading body literal", "uid", uid, "error", readErr)
				rawBody = nil
			}
		}
	}

	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("fetch message UID %d: %w", uid, err)
	}

	if rawBody == nil {
		return nil, fmt.Errorf("server returned no body for UID %d in %s", uid, s.mailbox)
	}

	parsed, err := ParseMessage(rawBody, opts)
	if err != nil {
		return nil, err
	}

	parsed.UID = result.UID
	parsed.Mailbox = s.mailbox
	parsed.Flags = flags
	parsed.Size = size
	parsed.InternalDate = result.InternalDate

	return parsed, nil
}
