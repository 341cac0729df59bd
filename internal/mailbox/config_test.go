package mailbox

import (
	"testing"
	"time"
)

func TestApplyDefaults_ImplicitTLS(t *testing.T) {
	cfg := Config{Host: "imap.example.com", Username: "u", Password: "p"}
	cfg.ApplyDefaults()

	if cfg.Port != 993 {
		t.Errorf("port = %d, want 993", cfg.Port)
	}
	if !cfg.SSL {
		t.Error("SSL should default to true")
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("timeout = %d, want 30", cfg.TimeoutSeconds)
	}
}

func TestApplyDefaults_PlaintextPort(t *testing.T) {
	cfg := Config{Host: "imap.example.com", Username: "u", Password: "p", Port: 143}
	cfg.ApplyDefaults()

	if cfg.SSL {
		t.Error("SSL should stay false on port 143")
	}
}

func TestApplyDefaults_StartTLS(t *testing.T) {
	cfg := Config{Host: "imap.example.com", Username: "u", Password: "p", StartTLS: true}
	cfg.ApplyDefaults()

	if cfg.SSL {
		t.Error("SSL must stay false when STARTTLS is requested")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{Host: "imap.example.com", Port: 993, Username: "u", Password: "p", SSL: true, TimeoutSeconds: 30}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing host", func(c *Config) { c.Host = "" }},
		{"missing username", func(c *Config) { c.Username = "" }},
		{"missing password", func(c *Config) { c.Password = "" }},
		{"port too low", func(c *Config) { c.Port = 0 }},
		{"port too high", func(c *Config) { c.Port = 70000 }},
		{"ssl and starttls", func(c *Config) { c.StartTLS = true }},
		{"negative timeout", func(c *Config) { c.TimeoutSeconds = -1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	cfg := Config{TimeoutSeconds: 45}
	if got := cfg.Timeout(); got != 45*time.Second {
		t.Errorf("Timeout() = %v, want 45s", got)
	}
}
