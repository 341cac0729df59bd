package mailbox

import (
	"fmt"
	"time"
)

// Config holds IMAP server connection parameters for the single
// configured account. It is embedded in the top-level server config
// under the "imap" YAML key.
type Config struct {
	// Host is the IMAP server hostname (e.g., "imap.gmail.com").
	Host string `yaml:"host"`

	// Port is the IMAP server port. Default: 993 (IMAPS).
	Port int `yaml:"port"`

	// Username is the IMAP login username (typically the email address).
	Username string `yaml:"username"`

	// Password is the IMAP login password. Supports environment variable
	// expansion via the config loader (e.g., ${IMAP_PASSWORD}).
	Password string `yaml:"password"`

	// SSL controls whether the connection uses implicit TLS. Default:
	// true unless the port is 143 (plaintext convention).
	SSL bool `yaml:"ssl"`

	// StartTLS upgrades a plaintext connection with STARTTLS. Only
	// meaningful when SSL is false.
	StartTLS bool `yaml:"starttls"`

	// TimeoutSeconds bounds every network call within one session,
	// from dial through logout. Default: 30.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// ApplyDefaults fills zero-value fields with sensible defaults.
// Called by the parent config's applyDefaults method.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 993
	}
	// SSL defaults to true. Since the bool zero-value is false, we
	// default SSL=true unless the port is 143 or the caller asked for
	// a STARTTLS upgrade (which requires a plaintext dial).
	if !c.SSL && !c.StartTLS && c.Port != 143 {
		c.SSL = true
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 30
	}
}

// Validate checks that the configuration is internally consistent.
// Returns an error describing the first problem found.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("imap.host is required")
	}
	if c.Username == "" {
		return fmt.Errorf("imap.username is required")
	}
	if c.Password == "" {
		return fmt.Errorf("imap.password is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("imap.port %d out of range (1-65535)", c.Port)
	}
	if c.SSL && c.StartTLS {
		return fmt.Errorf("imap.ssl and imap.starttls are mutually exclusive")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("imap.timeout_seconds must not be negative")
	}
	return nil
}

// Timeout returns the per-session deadline as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
