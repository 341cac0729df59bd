package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
imap:
  host: imap.example.com
  username: user@example.com
  password: hunter2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.IMAP.Port != 993 {
		t.Errorf("imap port = %d, want 993", cfg.IMAP.Port)
	}
	if !cfg.IMAP.SSL {
		t.Error("ssl should default to true")
	}
	if cfg.IMAP.TimeoutSeconds != 30 {
		t.Errorf("timeout = %d, want 30", cfg.IMAP.TimeoutSeconds)
	}
	if cfg.Transport != TransportStdio {
		t.Errorf("transport = %q, want stdio", cfg.Transport)
	}
	if got := cfg.Listen.Addr(); got != "127.0.0.1:8993" {
		t.Errorf("listen addr = %q", got)
	}
	if cfg.LogLevel != "" {
		t.Errorf("log level = %q, want empty (info)", cfg.LogLevel)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_IMAP_PASSWORD", "s3cret")

	path := writeConfig(t, `
imap:
  host: imap.example.com
  username: user@example.com
  password: ${TEST_IMAP_PASSWORD}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.IMAP.Password != "s3cret" {
		t.Errorf("password = %q, want expanded value", cfg.IMAP.Password)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
imap:
  host: mail.example.net
  port: 143
  username: u
  password: p
  starttls: true
transport: http
listen:
  address: 0.0.0.0
  port: 9000
log_level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.IMAP.SSL {
		t.Error("ssl should stay false with starttls on port 143")
	}
	if !cfg.IMAP.StartTLS {
		t.Error("starttls not parsed")
	}
	if cfg.Transport != TransportHTTP {
		t.Errorf("transport = %q", cfg.Transport)
	}
	if got := cfg.Listen.Addr(); got != "0.0.0.0:9000" {
		t.Errorf("listen addr = %q", got)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing host", "imap:\n  username: u\n  password: p\n"},
		{"bad transport", "imap:\n  host: h\n  username: u\n  password: p\ntransport: carrier-pigeon\n"},
		{"bad yaml", "imap: [unclosed\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestFindConfig_Explicit(t *testing.T) {
	path := writeConfig(t, "imap: {}\n")

	got, err := FindConfig(path)
	if err != nil {
		t.Fatalf("FindConfig error: %v", err)
	}
	if got != path {
		t.Errorf("FindConfig = %q, want %q", got, path)
	}

	if _, err := FindConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing explicit path should error")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range tests {
		got, err := ParseLogLevel(tc.in)
		if err != nil {
			t.Errorf("ParseLogLevel(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Error("unknown level should error")
	}
}
