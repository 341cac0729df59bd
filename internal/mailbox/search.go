package mailbox

import (
	"fmt"
	"sort"

	"github.com/emersion/go-imap/v2"
)

// Search finds messages matching the criteria in the selected mailbox
// and returns their summaries in ascending UID order. When limit is
// positive, only the limit highest-UID matches (the most recent) are
// returned, still ascending within the returned slice.
func (s *Session) Search(criteria Criteria, limit int) ([]MessageSummary, error) {
	compiled, err := criteria.Compile()
	if err != nil {
		return nil, err
	}

	searchData, err := s.client.UIDSearch(compiled, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.mailbox, err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}

	// Servers return UIDs in ascending order, but that is convention,
	// not contract.
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })
	uids = tailUIDs(uids, limit)

	uidSet := imap.UIDSet{}
	for _, uid := range uids {
		uidSet.AddNum(uid)
	}

	return s.fetchSummaries(uidSet)
}

// tailUIDs keeps the last limit entries of an ascending UID slice.
// A non-positive limit keeps everything.
func tailUIDs(uids []imap.UID, limit int) []imap.UID {
	if limit <= 0 || len(uids) <= limit {
		return uids
	}
	return uids[len(uids)-limit:]
}

// fetchSummaries fetches envelope, flag, size, and internal-date
// metadata for the given UIDs and returns normalized summaries in
// ascending UID order.
func (s *Session) fetchSummaries(uidSet imap.UIDSet) ([]MessageSummary, error) {
	fetchOpts := &imap.FetchOptions{
		UID:          true,
		Envelope:     true,
		Flags:        true,
		RFC822Size:   true,
		InternalDate: true,
	}

	fetchCmd := s.client.Fetch(uidSet, fetchOpts)

	var summaries []MessageSummary
	for {
		msg := fetchCmd.Next()
		if msg == nil {
			break
		}
		summary, err := collectSummary(msg, s.mailbox)
		if err != nil {
			s.logger.Debug("skipping message", "error", err)
			continue
		}
		summaries = append(summaries, summary)
	}

	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("fetch summaries: %w", err)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UID < summaries[j].UID
	})

	return summaries, nil
}
