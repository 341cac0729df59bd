package mailbox

import (
	"testing"
	"time"

	"github.com/emersion/go-imap/v2"
)

func TestNormalizeList(t *testing.T) {
	raw := []*imap.ListData{
		{
			Mailbox: "INBOX",
			Delim:   '/',
			Attrs:   []imap.MailboxAttr{imap.MailboxAttrHasNoChildren},
		},
		{
			Mailbox: "Archive",
			Delim:   0,
			Attrs:   []imap.MailboxAttr{imap.MailboxAttrNoSelect},
		},
	}

	got := normalizeList(raw)
	if len(got) != 2 {
		t.Fatalf("normalizeList returned %d entries, want 2", len(got))
	}

	if got[0].Name != "INBOX" || got[0].Delimiter != "/" {
		t.Errorf("first entry = %+v", got[0])
	}
	if len(got[0].Flags) != 1 || got[0].Flags[0] != `\HasNoChildren` {
		t.Errorf("first entry flags = %v", got[0].Flags)
	}

	// A NIL delimiter normalizes to the empty string, not a NUL rune.
	if got[1].Delimiter != "" {
		t.Errorf("nil delimiter = %q, want empty", got[1].Delimiter)
	}
	if got[1].Messages != nil || got[1].Unseen != nil {
		t.Errorf("counts should stay nil before STATUS: %+v", got[1])
	}
}

func TestNormalizeEnvelope(t *testing.T) {
	date := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)
	env := &imap.Envelope{
		Date:      date,
		Subject:   "Quarterly numbers",
		MessageID: "<q1@example.com>",
		From: []imap.Address{
			{Name: "Alice", Mailbox: "alice", Host: "example.com"},
		},
		To: []imap.Address{
			{Mailbox: "bob", Host: "example.com"},
		},
	}

	got := normalizeEnvelope(env)
	if got.Subject != "Quarterly numbers" {
		t.Errorf("subject = %q", got.Subject)
	}
	if got.Date == nil || !got.Date.Equal(date) {
		t.Errorf("date = %v", got.Date)
	}
	if len(got.From) != 1 || got.From[0] != "Alice <alice@example.com>" {
		t.Errorf("from = %v", got.From)
	}
	if len(got.To) != 1 || got.To[0] != "bob@example.com" {
		t.Errorf("to = %v", got.To)
	}
	if len(got.Cc) != 0 {
		t.Errorf("cc = %v", got.Cc)
	}
}

func TestNormalizeEnvelope_Nil(t *testing.T) {
	got := normalizeEnvelope(nil)
	if got.Subject != "" || got.Date != nil || len(got.From) != 0 {
		t.Errorf("nil envelope should normalize to zero value, got %+v", got)
	}
}

func TestNormalizeEnvelope_ZeroDate(t *testing.T) {
	got := normalizeEnvelope(&imap.Envelope{Subject: "undated"})
	if got.Date != nil {
		t.Errorf("zero date should stay nil, got %v", got.Date)
	}
}

func TestFormatAddress(t *testing.T) {
	withName := imap.Address{Name: "Carol", Mailbox: "carol", Host: "example.net"}
	if got := formatAddress(withName); got != "Carol <carol@example.net>" {
		t.Errorf("formatAddress = %q", got)
	}

	bare := imap.Address{Mailbox: "dave", Host: "example.net"}
	if got := formatAddress(bare); got != "dave@example.net" {
		t.Errorf("formatAddress = %q", got)
	}
}
