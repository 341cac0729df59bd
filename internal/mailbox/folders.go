package mailbox

import (
	"fmt"
	"sort"

	"github.com/emersion/go-imap/v2"
)

// ListMailboxes returns every mailbox with its hierarchy delimiter and
// attribute flags, plus STATUS counters for selectable mailboxes.
// Results are sorted alphabetically by name. The session does not need
// a selected mailbox.
func (s *Session) ListMailboxes() ([]MailboxInfo, error) {
	listCmd := s.client.List("", "*", nil)
	raw, err := listCmd.Collect()
	if err != nil {
		return nil, fmt.Errorf("list mailboxes: %w", err)
	}

	folders := normalizeList(raw)

	for i := range folders {
		if hasFlag(folders[i].Flags, string(imap.MailboxAttrNoSelect)) {
			continue
		}
		statusOpts := &imap.StatusOptions{
			NumMessages: true,
			NumUnseen:   true,
		}
		statusData, err := s.client.Status(folders[i].Name, statusOpts).Wait()
		if err != nil {
			s.logger.Debug("status failed for mailbox", "mailbox", folders[i].Name, "error", err)
			continue
		}
		folders[i].Messages = statusData.NumMessages
		folders[i].Unseen = statusData.NumUnseen
	}

	sort.Slice(folders, func(i, j int) bool {
		return folders[i].Name < folders[j].Name
	})

	return folders, nil
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}
