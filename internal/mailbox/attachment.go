package mailbox

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime/quotedprintable"
	"strings"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// Locate finds one attachment in a parsed message. An exact filename
// match takes precedence when filename is non-empty; otherwise the
// zero-based index selects among attachments in parse order.
func Locate(msg *ParsedMessage, index int, filename string) (*AttachmentDescriptor, error) {
	if filename != "" {
		for i := range msg.Attachments {
			if msg.Attachments[i].Filename == filename {
				return &msg.Attachments[i], nil
			}
		}
		return nil, &AttachmentNotFoundError{Selector: fmt.Sprintf("filename %q", filename)}
	}

	if index < 0 || index >= len(msg.Attachments) {
		return nil, &AttachmentNotFoundError{
			Selector: fmt.Sprintf("index %d (message has %d attachments)", index, len(msg.Attachments)),
		}
	}
	return &msg.Attachments[index], nil
}

// ExtractAttachment re-fetches the attachment's body part from the
// server, decodes its transfer encoding, and returns the byte range
// starting at offset. When maxLen is positive the result is capped at
// maxLen bytes; zero or negative means unbounded. The part content is
// never cached from the parse step.
func (s *Session) ExtractAttachment(uid uint32, desc AttachmentDescriptor, offset, maxLen int64) ([]byte, error) {
	uidSet := imap.UIDSet{}
	uidSet.AddNum(imap.UID(uid))

	section := &imap.FetchItemBodySection{
		Part: desc.PartPath,
		Peek: true,
	}
	fetchOpts := &imap.FetchOptions{
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{section},
	}

	fetchCmd := s.client.Fetch(uidSet, fetchOpts)

	msg := fetchCmd.Next()
	if msg == nil {
		_ = fetchCmd.Close()
		return nil, &MessageNotFoundError{UID: uid, Mailbox: s.mailbox}
	}

	var raw []byte
	for {
		item := msg.Next()
		if item == nil {
			break
		}
		if data, ok := item.(imapclient.FetchItemDataBodySection); ok {
			if data.Literal == nil {
				continue
			}
			var readErr error
			raw, readErr = io.ReadAll(io.LimitReader(data.Literal, maxRawMessageSize))
			drainLiteral(data.Literal)
			if readErr != nil {
				s.logger.Debug("error reading part literal", "uid", uid, "error", readErr)
				raw = nil
			}
		}
	}

	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("fetch part %v of UID %d: %w", desc.PartPath, uid, err)
	}

	decoded := decodeTransfer(raw, desc.Encoding)
	return sliceRange(decoded, offset, maxLen), nil
}

// decodeTransfer decodes a raw body part per its declared
// Content-Transfer-Encoding. Decode failures fall back to the raw
// bytes — anomalies are recovered, never surfaced.
func decodeTransfer(raw []byte, encoding string) []byte {
	switch encoding {
	case "base64":
		// The wire form is line-wrapped; the decoder wants a bare alphabet.
		compact := strings.Map(func(r rune) rune {
			if r == '\r' || r == '\n' || r == ' ' || r == '\t' {
				return -1
			}
			return r
		}, string(raw))
		decoded, err := base64.StdEncoding.DecodeString(compact)
		if err != nil {
			return raw
		}
		return decoded
	case "quoted-printable":
		decoded, err := io.ReadAll(quotedprintable.NewReader(bytes.NewReader(raw)))
		if err != nil && len(decoded) == 0 {
			return raw
		}
		return decoded
	default:
		// 7bit, 8bit, binary, or absent: bytes pass through untouched.
		return raw
	}
}

// sliceRange applies an inclusive byte offset and an optional length
// cap to decoded content.
func sliceRange(b []byte, offset, maxLen int64) []byte {
	if offset < 0 {
		offset = 0
	}
	if offset >= int64(len(b)) {
		return []byte{}
	}
	b = b[offset:]
	if maxLen > 0 && int64(len(b)) > maxLen {
		b = b[:maxLen]
	}
	return b
}
