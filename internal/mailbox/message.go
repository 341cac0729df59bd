package mailbox

import (
	"bytes"
	"io"
	"mime"
	"strings"

	"github.com/emersion/go-message"

	// Registers decoders for the long tail of legacy charsets
	// (ISO-8859-*, windows-125x, GBK, ...) so declared encodings
	// resolve wherever possible before the lossy fallback kicks in.
	_ "github.com/emersion/go-message/charset"
)

// BodyOptions controls body extraction during a parse.
type BodyOptions struct {
	// IncludeBody enables text/plain accumulation. When false, no body
	// content is extracted at all; attachments are still recorded.
	IncludeBody bool

	// IncludeHTML additionally accumulates text/html parts.
	IncludeHTML bool

	// MaxChars is the per-part character budget. Each body part is
	// truncated against it independently; zero or negative means
	// unbounded.
	MaxChars int
}

// headerSubset is the fixed set of headers extracted into
// ParsedMessage.Headers.
var headerSubset = []string{"Subject", "From", "To", "Cc", "Date", "Message-Id"}

// ParseMessage parses a raw RFC 822 payload into headers, body text,
// and attachment metadata.
//
// Decode anomalies never fail the parse: unknown or invalid charsets
// fall back to a lossy UTF-8 decode, absent headers become empty
// strings, and malformed nested parts end the walk with whatever was
// accumulated. Only a payload that cannot be tokenized as a message at
// all produces a ParseError.
func ParseMessage(raw []byte, opts BodyOptions) (*ParsedMessage, error) {
	ent, err := message.Read(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		return nil, &ParseError{Err: err}
	}
	if ent == nil {
		return nil, &ParseError{Err: err}
	}

	parsed := &ParsedMessage{
		Headers: make(map[string]string, len(headerSubset)),
	}
	for _, key := range headerSubset {
		parsed.Headers[canonicalHeaderKey(key)] = headerText(ent, key)
	}

	acc := &bodyAccumulator{opts: opts}
	acc.walk(ent, nil)

	parsed.Attachments = acc.attachments
	if opts.IncludeBody {
		parsed.Text = acc.text.String()
		if opts.IncludeHTML {
			parsed.HTML = acc.html.String()
		}
	}

	return parsed, nil
}

// bodyAccumulator carries the state of one MIME tree walk: text and
// HTML builders for body leaves, and the descriptor list for
// attachment leaves.
type bodyAccumulator struct {
	opts        BodyOptions
	text        strings.Builder
	html        strings.Builder
	attachments []AttachmentDescriptor
}

// walk recurses through the MIME part tree. Container parts descend
// with an extended part path; leaf parts are classified as attachment,
// body text, or ignorable. Part paths use IMAP numbering: children of
// a multipart are 1-based, and a non-multipart message body is part 1.
func (acc *bodyAccumulator) walk(ent *message.Entity, path []int) {
	if mr := ent.MultipartReader(); mr != nil {
		for i := 1; ; i++ {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil && !message.IsUnknownCharset(err) {
				// Structurally broken subtree; keep what we have.
				break
			}
			if part == nil {
				continue
			}
			childPath := append(append([]int(nil), path...), i)
			acc.walk(part, childPath)
		}
		return
	}

	acc.leaf(ent, path)
}

// leaf handles a single non-container part.
func (acc *bodyAccumulator) leaf(ent *message.Entity, path []int) {
	if len(path) == 0 {
		path = []int{1}
	}

	ctype, ctParams, err := ent.Header.ContentType()
	if err != nil || ctype == "" {
		ctype = "text/plain"
	}
	disp, dispParams, _ := ent.Header.ContentDisposition()

	filename := decodeWords(dispParams["filename"])
	if filename == "" {
		filename = decodeWords(ctParams["name"])
	}

	isText := ctype == "text/plain" || ctype == "text/html"
	attachment := disp == "attachment" ||
		(filename != "" && disp == "inline") ||
		(filename != "" && !isText)

	if attachment {
		// Entity bodies stream with the transfer encoding already
		// decoded, so counting here yields the decoded size.
		size, _ := io.Copy(io.Discard, ent.Body)
		acc.attachments = append(acc.attachments, AttachmentDescriptor{
			Filename:    filename,
			ContentType: ctype,
			Size:        size,
			PartPath:    path,
			Encoding:    strings.ToLower(ent.Header.Get("Content-Transfer-Encoding")),
		})
		return
	}

	if !acc.opts.IncludeBody || !isText {
		return
	}
	if ctype == "text/html" && !acc.opts.IncludeHTML {
		return
	}

	// Read whatever decodes; a partial body from a broken part is
	// still useful.
	body, _ := io.ReadAll(ent.Body)
	text := truncateChars(lossyDecode(body), acc.opts.MaxChars)

	if ctype == "text/plain" {
		acc.text.WriteString(text)
	} else {
		acc.html.WriteString(text)
	}
}

// headerText returns the decoded header value, falling back to the raw
// value when encoded-word decoding fails and to "" when absent.
func headerText(ent *message.Entity, key string) string {
	value, err := ent.Header.Text(key)
	if err != nil {
		return ent.Header.Get(key)
	}
	return value
}

// canonicalHeaderKey maps a header name to its lower-snake result key
// (e.g., "Message-Id" -> "message_id").
func canonicalHeaderKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "-", "_")
}

// decodeWords decodes RFC 2047 encoded-word text (common in attachment
// filenames). Undecodable input is returned as-is.
func decodeWords(s string) string {
	if s == "" {
		return ""
	}
	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(s)
	if err != nil {
		return s
	}
	return decoded
}

// lossyDecode converts raw bytes to valid UTF-8, replacing anything
// that does not decode. This is the last-resort fallback for parts
// whose declared charset is absent or wrong.
func lossyDecode(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}

// truncateChars applies a character (rune) budget to one body part.
// Zero or negative max means unbounded.
func truncateChars(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "\n\n[truncated]"
}
