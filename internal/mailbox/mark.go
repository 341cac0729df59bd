package mailbox

import (
	"fmt"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// SetFlag adds or removes exactly one flag on the message with the
// given UID, then re-fetches and returns the resulting flag set. The
// flag name must be one of "seen", "flagged", or "answered", and the
// session must have been opened writable.
//
// The store-then-read sequence is not atomic: another client may
// change flags or expunge the message in between. Last writer wins.
func (s *Session) SetFlag(uid uint32, flagName string, present bool) ([]string, error) {
	if !s.writable {
		return nil, fmt.Errorf("session for %s is read-only", s.mailbox)
	}

	imapFlag, ok := ValidFlag(flagName)
	if !ok {
		return nil, fmt.Errorf("invalid flag %q (valid: seen, flagged, answered)", flagName)
	}

	uidSet := imap.UIDSet{}
	uidSet.AddNum(imap.UID(uid))

	op := imap.StoreFlagsAdd
	if !present {
		op = imap.StoreFlagsDel
	}

	storeCmd := s.client.Store(uidSet, &imap.StoreFlags{
		Op:     op,
		Silent: true,
		Flags:  []imap.Flag{imap.Flag(imapFlag)},
	}, nil)
	if err := storeCmd.Close(); err != nil {
		return nil, fmt.Errorf("store flags: %w", err)
	}

	return s.fetchFlags(uid)
}

// fetchFlags reads back the current flag set for one UID. A missing
// fetch response means the UID no longer exists in the mailbox.
func (s *Session) fetchFlags(uid uint32) ([]string, error) {
	uidSet := imap.UIDSet{}
	uidSet.AddNum(imap.UID(uid))

	fetchCmd := s.client.Fetch(uidSet, &imap.FetchOptions{UID: true, Flags: true})

	msg := fetchCmd.Next()
	if msg == nil {
		_ = fetchCmd.Close()
		return nil, &MessageNotFoundError{UID: uid, Mailbox: s.mailbox}
	}

	// Flag sets are unordered; preserve server order without assuming it.
	flags := []string{}
	for {
		item := msg.Next()
		if item == nil {
			break
		}
		if data, ok := item.(imapclient.FetchItemDataFlags); ok {
			for _, f := range data.Flags {
				flags = append(flags, string(f))
			}
		}
	}

	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("fetch flags for UID %d: %w", uid, err)
	}

	return flags, nil
}
