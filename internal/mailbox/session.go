// Package mailbox is the IMAP adapter behind the MCP tool surface. It
// translates structured tool requests (search, fetch, mark, list
// folders, download attachment) into IMAP protocol operations and
// normalizes heterogeneous server responses into stable structures.
//
// Every operation opens its own session and releases it when done.
// There is no connection pool and no cross-operation shared state; one
// slow or failing call cannot corrupt another's session.
package mailbox

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// Session is an authenticated, single-use IMAP connection. It is owned
// exclusively by one operation: created by Dial, destroyed by Close
// regardless of whether the operation succeeded.
type Session struct {
	client   *imapclient.Client
	conn     net.Conn
	mailbox  string
	writable bool
	logger   *slog.Logger
}

// Dial opens a fresh IMAP session: connect (implicit TLS, STARTTLS
// upgrade, or plaintext), authenticate, and select mbox in the
// requested access mode. An empty mbox skips selection, which is all
// the folder-listing operation needs.
//
// The configured timeout is set as a deadline on the raw connection,
// so it bounds every protocol exchange in the session, not just the
// dial. Callers must Close the session when the operation ends.
func Dial(ctx context.Context, cfg Config, mbox string, writable bool, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}

	addr := net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))
	logger.Debug("dialing IMAP server", "addr", addr, "ssl", cfg.SSL, "starttls", cfg.StartTLS)

	dialer := net.Dialer{Timeout: cfg.Timeout()}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, &ConnectionError{Addr: addr, Err: err}
	}
	if d := cfg.Timeout(); d > 0 {
		// One deadline covers the whole session lifetime.
		_ = conn.SetDeadline(time.Now().Add(d))
	}

	opts := imapclient.Options{
		TLSConfig: &tls.Config{ServerName: cfg.Host},
	}

	var client *imapclient.Client
	switch {
	case cfg.SSL:
		client = imapclient.New(tls.Client(conn, opts.TLSConfig), &opts)
	case cfg.StartTLS:
		client, err = imapclient.NewStartTLS(conn, &opts)
		if err != nil {
			_ = conn.Close()
			return nil, &ConnectionError{Addr: addr, Err: fmt.Errorf("starttls: %w", err)}
		}
	default:
		client = imapclient.New(conn, &opts)
	}

	if err := client.Login(cfg.Username, cfg.Password).Wait(); err != nil {
		_ = client.Close()
		return nil, &AuthError{Username: cfg.Username, Err: err}
	}

	s := &Session{
		client:   client,
		conn:     conn,
		writable: writable,
		logger:   logger,
	}

	if mbox != "" {
		selectOpts := &imap.SelectOptions{ReadOnly: !writable}
		if _, err := client.Select(mbox, selectOpts).Wait(); err != nil {
			s.Close()
			return nil, &MailboxNotFoundError{Mailbox: mbox, Err: err}
		}
		s.mailbox = mbox
	}

	logger.Debug("IMAP session established", "addr", addr, "mailbox", mbox, "writable", writable)
	return s, nil
}

// Mailbox returns the selected mailbox name, or "" when the session
// was opened without selecting one.
func (s *Session) Mailbox() string {
	return s.mailbox
}

// Close logs out and tears down the connection. Logout errors are
// ignored: the session is single-use and the transport is closed
// either way.
func (s *Session) Close() {
	if s.client == nil {
		return
	}
	if err := s.client.Logout().Wait(); err != nil {
		s.logger.Debug("imap logout failed", "error", err)
	}
	_ = s.client.Close()
	s.client = nil
}
