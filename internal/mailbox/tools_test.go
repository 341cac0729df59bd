package mailbox

import "testing"

func TestUIDArg(t *testing.T) {
	// JSON numbers decode to float64.
	uid, err := uidArg(map[string]any{"uid": float64(1234)})
	if err != nil {
		t.Fatalf("uidArg error: %v", err)
	}
	if uid != 1234 {
		t.Errorf("uid = %d, want 1234", uid)
	}

	for name, args := range map[string]map[string]any{
		"missing":    {},
		"zero":       {"uid": float64(0)},
		"negative":   {"uid": float64(-1)},
		"wrong type": {"uid": "1234"},
	} {
		if _, err := uidArg(args); err == nil {
			t.Errorf("%s uid: expected error", name)
		}
	}
}

func TestArgHelpers(t *testing.T) {
	args := map[string]any{
		"mailbox": "Archive",
		"limit":   float64(5),
		"unseen":  true,
		"empty":   "",
	}

	if got := stringArg(args, "mailbox"); got != "Archive" {
		t.Errorf("stringArg = %q", got)
	}
	if got := stringArg(args, "absent"); got != "" {
		t.Errorf("absent stringArg = %q", got)
	}
	if got := stringArgDefault(args, "empty", "INBOX"); got != "INBOX" {
		t.Errorf("empty string should fall back to default, got %q", got)
	}
	if got := intArgDefault(args, "limit", 20); got != 5 {
		t.Errorf("intArgDefault = %d", got)
	}
	if got := intArgDefault(args, "absent", 20); got != 20 {
		t.Errorf("absent intArgDefault = %d", got)
	}
	if got := boolArgDefault(args, "unseen", false); got != true {
		t.Errorf("boolArgDefault = %v", got)
	}
	if got := boolArgDefault(args, "absent", true); got != true {
		t.Errorf("absent boolArgDefault = %v", got)
	}
}

func TestValidFlag(t *testing.T) {
	if f, ok := ValidFlag("seen"); !ok || f != `\Seen` {
		t.Errorf("ValidFlag(seen) = %q, %v", f, ok)
	}
	if _, ok := ValidFlag("deleted"); ok {
		t.Error("deleted must not be a settable flag")
	}
}
