package mailbox

import (
	"time"

	"github.com/emersion/go-imap/v2"
)

// dateLayout is the only accepted textual date format for filters.
const dateLayout = "2006-01-02"

// Criteria is an immutable set of optional message filters. An absent
// filter is unconstrained; multiple present filters are combined with
// AND. There is no OR or NOT support.
type Criteria struct {
	// From matches a substring of the From header.
	From string

	// To matches a substring of the To header.
	To string

	// Subject matches a substring of the Subject header.
	Subject string

	// Text matches a substring anywhere in the message.
	Text string

	// Unseen is tri-state: true matches messages without \Seen, false
	// matches messages with \Seen, nil leaves read-state unconstrained.
	Unseen *bool

	// Since is an inclusive lower date bound in YYYY-MM-DD form.
	Since string

	// Before is an exclusive upper date bound in YYYY-MM-DD form.
	Before string
}

// Compile translates the criteria into an IMAP search expression.
// Empty criteria compile to the zero expression, which matches every
// message in the mailbox.
func (c Criteria) Compile() (*imap.SearchCriteria, error) {
	out := &imap.SearchCriteria{}

	if c.From != "" {
		out.Header = append(out.Header, imap.SearchCriteriaHeaderField{Key: "From", Value: c.From})
	}
	if c.To != "" {
		out.Header = append(out.Header, imap.SearchCriteriaHeaderField{Key: "To", Value: c.To})
	}
	if c.Subject != "" {
		out.Header = append(out.Header, imap.SearchCriteriaHeaderField{Key: "Subject", Value: c.Subject})
	}
	if c.Text != "" {
		out.Text = append(out.Text, c.Text)
	}
	if c.Unseen != nil {
		if *c.Unseen {
			out.NotFlag = append(out.NotFlag, imap.FlagSeen)
		} else {
			out.Flag = append(out.Flag, imap.FlagSeen)
		}
	}
	if c.Since != "" {
		t, err := ParseDate(c.Since)
		if err != nil {
			return nil, err
		}
		out.Since = t
	}
	if c.Before != "" {
		t, err := ParseDate(c.Before)
		if err != nil {
			return nil, err
		}
		out.Before = t
	}

	return out, nil
}

// ParseDate parses YYYY-MM-DD filter text. Anything else fails with
// InvalidDateError.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, &InvalidDateError{Value: value, Err: err}
	}
	return t, nil
}
