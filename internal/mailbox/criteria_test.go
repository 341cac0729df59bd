package mailbox

import (
	"errors"
	"testing"
	"time"

	"github.com/emersion/go-imap/v2"
)

func TestCompile_Empty(t *testing.T) {
	compiled, err := Criteria{}.Compile()
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if len(compiled.Header) != 0 || len(compiled.Text) != 0 ||
		len(compiled.Flag) != 0 || len(compiled.NotFlag) != 0 ||
		!compiled.Since.IsZero() || !compiled.Before.IsZero() {
		t.Errorf("empty criteria should compile to the zero expression, got %+v", compiled)
	}
}

func TestCompile_AllFilters(t *testing.T) {
	unseen := true
	c := Criteria{
		From:    "alice@example.com",
		To:      "bob@example.com",
		Subject: "invoice",
		Text:    "urgent",
		Unseen:  &unseen,
		Since:   "2024-01-01",
		Before:  "2024-06-30",
	}

	compiled, err := c.Compile()
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	headers := map[string]string{}
	for _, h := range compiled.Header {
		headers[h.Key] = h.Value
	}
	if headers["From"] != "alice@example.com" {
		t.Errorf("From predicate = %q", headers["From"])
	}
	if headers["To"] != "bob@example.com" {
		t.Errorf("To predicate = %q", headers["To"])
	}
	if headers["Subject"] != "invoice" {
		t.Errorf("Subject predicate = %q", headers["Subject"])
	}

	if len(compiled.Text) != 1 || compiled.Text[0] != "urgent" {
		t.Errorf("Text predicate = %v", compiled.Text)
	}
	if len(compiled.NotFlag) != 1 || compiled.NotFlag[0] != imap.FlagSeen {
		t.Errorf("unseen=true should compile to NOT \\Seen, got %v", compiled.NotFlag)
	}

	wantSince := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !compiled.Since.Equal(wantSince) {
		t.Errorf("Since = %v, want %v", compiled.Since, wantSince)
	}
	wantBefore := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	if !compiled.Before.Equal(wantBefore) {
		t.Errorf("Before = %v, want %v", compiled.Before, wantBefore)
	}
}

func TestCompile_SeenFilter(t *testing.T) {
	seen := false
	compiled, err := Criteria{Unseen: &seen}.Compile()
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if len(compiled.Flag) != 1 || compiled.Flag[0] != imap.FlagSeen {
		t.Errorf("unseen=false should compile to \\Seen, got %v", compiled.Flag)
	}
	if len(compiled.NotFlag) != 0 {
		t.Errorf("unexpected NotFlag predicates: %v", compiled.NotFlag)
	}
}

func TestCompile_InvalidDates(t *testing.T) {
	for _, bad := range []string{"01/02/2024", "2024-13-01", "yesterday", "2024-1-1"} {
		_, err := Criteria{Since: bad}.Compile()
		var dateErr *InvalidDateError
		if !errors.As(err, &dateErr) {
			t.Errorf("Since=%q: error = %v, want InvalidDateError", bad, err)
		}

		_, err = Criteria{Before: bad}.Compile()
		if !errors.As(err, &dateErr) {
			t.Errorf("Before=%q: error = %v, want InvalidDateError", bad, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", got, want)
	}
}
