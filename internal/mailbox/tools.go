package mailbox

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Default tool parameter values, matching the documented tool surface.
const (
	defaultMailbox      = "INBOX"
	defaultSearchLimit  = 20
	defaultMaxBodyChars = 20000
	defaultMaxBytes     = 10000000
)

// Tools holds the mailbox tool handlers. Each handler takes the raw
// argument map from the tool registry, opens its own IMAP session for
// the duration of the call, and returns a JSON document for the
// client.
type Tools struct {
	cfg    Config
	logger *slog.Logger
}

// NewTools creates mailbox tools for the configured account.
func NewTools(cfg Config, logger *slog.Logger) *Tools {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tools{cfg: cfg, logger: logger}
}

// HandleListMailboxes lists all folders with delimiter, flags, and counts.
func (t *Tools) HandleListMailboxes(ctx context.Context, args map[string]any) (string, error) {
	session, err := Dial(ctx, t.cfg, "", false, t.logger)
	if err != nil {
		return "", err
	}
	defer session.Close()

	folders, err := session.ListMailboxes()
	if err != nil {
		return "", err
	}
	if folders == nil {
		folders = []MailboxInfo{}
	}
	return marshalResult(folders)
}

// HandleSearchMessages searches a mailbox and returns message summaries
// in ascending UID order.
func (t *Tools) HandleSearchMessages(ctx context.Context, args map[string]any) (string, error) {
	mbox := stringArgDefault(args, "mailbox", defaultMailbox)
	limit := intArgDefault(args, "limit", defaultSearchLimit)

	criteria := Criteria{
		From:    stringArg(args, "from_"),
		To:      stringArg(args, "to"),
		Subject: stringArg(args, "subject"),
		Text:    stringArg(args, "text"),
		Since:   stringArg(args, "since"),
		Before:  stringArg(args, "before"),
	}
	if v, ok := args["unseen"].(bool); ok {
		criteria.Unseen = &v
	}

	session, err := Dial(ctx, t.cfg, mbox, false, t.logger)
	if err != nil {
		return "", err
	}
	defer session.Close()

	summaries, err := session.Search(criteria, limit)
	if err != nil {
		return "", err
	}
	if summaries == nil {
		summaries = []MessageSummary{}
	}
	return marshalResult(summaries)
}

// HandleGetMessage fetches one message by UID with headers,
// attachments, and optional bodies.
func (t *Tools) HandleGetMessage(ctx context.Context, args map[string]any) (string, error) {
	uid, err := uidArg(args)
	if err != nil {
		return "", err
	}
	mbox := stringArgDefault(args, "mailbox", defaultMailbox)

	opts := BodyOptions{
		IncludeBody: boolArgDefault(args, "include_body", true),
		IncludeHTML: boolArgDefault(args, "include_html", false),
		MaxChars:    intArgDefault(args, "max_body_chars", defaultMaxBodyChars),
	}

	session, err := Dial(ctx, t.cfg, mbox, false, t.logger)
	if err != nil {
		return "", err
	}
	defer session.Close()

	parsed, err := session.FetchMessage(uid, opts)
	if err != nil {
		return "", err
	}
	if parsed.Attachments == nil {
		parsed.Attachments = []AttachmentDescriptor{}
	}
	return marshalResult(parsed)
}

// attachmentPayload is the download_attachment response document.
// Content crosses the tool boundary base64-encoded.
type attachmentPayload struct {
	UID           uint32 `json:"uid"`
	Mailbox       string `json:"mailbox"`
	Filename      string `json:"filename"`
	ContentType   string `json:"content_type"`
	SizeBytes     int64  `json:"size_bytes"`
	OffsetBytes   int64  `json:"offset_bytes"`
	ReturnedBytes int    `json:"returned_bytes"`
	ContentBase64 string `json:"content_base64"`
}

// HandleDownloadAttachment locates an attachment by filename (exact
// match, takes precedence) or index and returns its bytes
// base64-encoded, honoring offset_bytes and max_bytes.
func (t *Tools) HandleDownloadAttachment(ctx context.Context, args map[string]any) (string, error) {
	uid, err := uidArg(args)
	if err != nil {
		return "", err
	}
	mbox := stringArgDefault(args, "mailbox", defaultMailbox)
	index := intArgDefault(args, "attachment_index", 0)
	filename := stringArg(args, "filename")
	offset := int64(intArgDefault(args, "offset_bytes", 0))
	maxBytes := int64(intArgDefault(args, "max_bytes", defaultMaxBytes))

	session, err := Dial(ctx, t.cfg, mbox, false, t.logger)
	if err != nil {
		return "", err
	}
	defer session.Close()

	// Parse the message for its attachment descriptors only; bodies
	// are not needed to locate a part.
	parsed, err := session.FetchMessage(uid, BodyOptions{})
	if err != nil {
		return "", err
	}

	desc, err := Locate(parsed, index, filename)
	if err != nil {
		return "", err
	}

	content, err := session.ExtractAttachment(uid, *desc, offset, maxBytes)
	if err != nil {
		return "", err
	}

	return marshalResult(attachmentPayload{
		UID:           uid,
		Mailbox:       mbox,
		Filename:      desc.Filename,
		ContentType:   desc.ContentType,
		SizeBytes:     desc.Size,
		OffsetBytes:   offset,
		ReturnedBytes: len(content),
		ContentBase64: base64.StdEncoding.EncodeToString(content),
	})
}

// seenResult is the set_seen response document.
type seenResult struct {
	UID     uint32   `json:"uid"`
	Mailbox string   `json:"mailbox"`
	Flags   []string `json:"flags"`
}

// HandleSetSeen marks a message seen or unseen and returns the
// resulting flag set.
func (t *Tools) HandleSetSeen(ctx context.Context, args map[string]any) (string, error) {
	uid, err := uidArg(args)
	if err != nil {
		return "", err
	}
	mbox := stringArgDefault(args, "mailbox", defaultMailbox)
	seen := boolArgDefault(args, "seen", true)

	session, err := Dial(ctx, t.cfg, mbox, true, t.logger)
	if err != nil {
		return "", err
	}
	defer session.Close()

	flags, err := session.SetFlag(uid, "seen", seen)
	if err != nil {
		return "", err
	}

	return marshalResult(seenResult{UID: uid, Mailbox: mbox, Flags: flags})
}

func marshalResult(v any) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(out), nil
}

// --- Argument extraction helpers ---

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func stringArgDefault(args map[string]any, key, def string) string {
	if v := stringArg(args, key); v != "" {
		return v
	}
	return def
}

func intArgDefault(args map[string]any, key string, def int) int {
	// JSON numbers arrive as float64.
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return def
}

func boolArgDefault(args map[string]any, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}

func uidArg(args map[string]any) (uint32, error) {
	v, ok := args["uid"].(float64)
	if !ok || v <= 0 {
		return 0, fmt.Errorf("uid is required")
	}
	return uint32(v), nil
}
