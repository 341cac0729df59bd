package tools

import (
	"context"

	"github.com/driftmail/mcp-imap/internal/mailbox"
)

// SetMailboxTools adds the IMAP mailbox tools to the registry.
func (r *Registry) SetMailboxTools(mt *mailbox.Tools) {
	r.Register(&Tool{
		Name:        "list_mailboxes",
		Description: "List available mailboxes/folders with hierarchy delimiter, attribute flags, and message counts.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			return mt.HandleListMailboxes(ctx, args)
		},
	})

	r.Register(&Tool{
		Name:        "search_messages",
		Description: "Search messages and return a summary list (UID, envelope, flags, size, internal date). All filters are optional and combined with AND; results ascend by UID and a limit keeps the most recent matches.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"mailbox": map[string]any{
					"type":        "string",
					"description": "Mailbox to search (default: INBOX)",
				},
				"from_": map[string]any{
					"type":        "string",
					"description": "Substring match against the From header",
				},
				"to": map[string]any{
					"type":        "string",
					"description": "Substring match against the To header",
				},
				"subject": map[string]any{
					"type":        "string",
					"description": "Substring match against the Subject header",
				},
				"text": map[string]any{
					"type":        "string",
					"description": "Substring match anywhere in the message",
				},
				"unseen": map[string]any{
					"type":        "boolean",
					"description": "true: only unread messages; false: only read messages; omit for both",
				},
				"since": map[string]any{
					"type":        "string",
					"description": "Inclusive lower date bound, YYYY-MM-DD",
				},
				"before": map[string]any{
					"type":        "string",
					"description": "Exclusive upper date bound, YYYY-MM-DD",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results (default: 20)",
				},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			return mt.HandleSearchMessages(ctx, args)
		},
	})

	r.Register(&Tool{
		Name:        "get_message",
		Description: "Fetch a message by UID. Returns headers, flags, attachment metadata, and (optionally) the plain-text and HTML bodies.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"uid": map[string]any{
					"type":        "integer",
					"description": "Message UID from search_messages results",
				},
				"mailbox": map[string]any{
					"type":        "string",
					"description": "Mailbox containing the message (default: INBOX)",
				},
				"include_body": map[string]any{
					"type":        "boolean",
					"description": "Extract the plain-text body (default: true)",
				},
				"include_html": map[string]any{
					"type":        "boolean",
					"description": "Also extract the HTML body (default: false)",
				},
				"max_body_chars": map[string]any{
					"type":        "integer",
					"description": "Per-part character budget for body truncation (default: 20000)",
				},
			},
			"required": []string{"uid"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			return mt.HandleGetMessage(ctx, args)
		},
	})

	r.Register(&Tool{
		Name:        "download_attachment",
		Description: "Download one attachment from a message, base64-encoded. Select by exact filename (takes precedence) or by zero-based index; supports ranged retrieval via offset_bytes and max_bytes.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"uid": map[string]any{
					"type":        "integer",
					"description": "Message UID",
				},
				"mailbox": map[string]any{
					"type":        "string",
					"description": "Mailbox containing the message (default: INBOX)",
				},
				"attachment_index": map[string]any{
					"type":        "integer",
					"description": "Zero-based attachment index in parse order (default: 0)",
				},
				"filename": map[string]any{
					"type":        "string",
					"description": "Exact attachment filename; overrides attachment_index when set",
				},
				"offset_bytes": map[string]any{
					"type":        "integer",
					"description": "Inclusive byte offset into the decoded content (default: 0)",
				},
				"max_bytes": map[string]any{
					"type":        "integer",
					"description": "Maximum bytes to return; 0 or negative for unbounded (default: 10000000)",
				},
			},
			"required": []string{"uid"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			return mt.HandleDownloadAttachment(ctx, args)
		},
	})

	r.Register(&Tool{
		Name:        "set_seen",
		Description: "Mark a message as seen or unseen and return the resulting flag set.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"uid": map[string]any{
					"type":        "integer",
					"description": "Message UID",
				},
				"mailbox": map[string]any{
					"type":        "string",
					"description": "Mailbox containing the message (default: INBOX)",
				},
				"seen": map[string]any{
					"type":        "boolean",
					"description": "true adds \\Seen, false removes it (default: true)",
				},
			},
			"required": []string{"uid"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			return mt.HandleSetSeen(ctx, args)
		},
	})
}
