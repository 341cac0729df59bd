// Package config handles mcp-imap configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/driftmail/mcp-imap/internal/mailbox"
)

// Transport names accepted in the config and on the command line.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// DefaultSearchPaths returns the config file search order.
// An explicit path (from -config flag) is checked first.
// Then: ./config.yaml, ~/.config/mcp-imap/config.yaml,
// /etc/mcp-imap/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"config.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "mcp-imap", "config.yaml"))
	}

	paths = append(paths, "/etc/mcp-imap/config.yaml")
	return paths
}

// FindConfig locates a config file. If explicit is non-empty, it must
// exist. Otherwise, searches DefaultSearchPaths and returns the first
// that exists.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no config file found (searched: %v)", DefaultSearchPaths())
}

// Config holds all mcp-imap configuration.
type Config struct {
	// IMAP is the single mailbox account this server bridges to.
	IMAP mailbox.Config `yaml:"imap"`

	// Transport selects how MCP is served: "stdio" or "http".
	// Default: stdio.
	Transport string `yaml:"transport"`

	// Listen configures the HTTP transport's bind address.
	Listen ListenConfig `yaml:"listen"`

	// LogLevel is one of debug, info, warn, error. Default: info.
	LogLevel string `yaml:"log_level"`
}

// ListenConfig defines the HTTP server settings.
type ListenConfig struct {
	Address string `yaml:"address"` // Bind address (default: 127.0.0.1)
	Port    int    `yaml:"port"`    // Default: 8993
}

// Addr returns the bind address in host:port form.
func (l ListenConfig) Addr() string {
	return fmt.Sprintf("%s:%d", l.Address, l.Port)
}

// Load reads and parses a YAML config file. ${VAR} references anywhere
// in the file are expanded from the environment before parsing, so
// secrets like the IMAP password can stay out of the file. Defaults
// are applied and the result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	expanded := os.Expand(string(data), func(key string) string {
		return os.Getenv(key)
	})

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	c.IMAP.ApplyDefaults()
	if c.Transport == "" {
		c.Transport = TransportStdio
	}
	if c.Listen.Address == "" {
		c.Listen.Address = "127.0.0.1"
	}
	if c.Listen.Port == 0 {
		c.Listen.Port = 8993
	}
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if err := c.IMAP.Validate(); err != nil {
		return err
	}
	if c.Transport != TransportStdio && c.Transport != TransportHTTP {
		return fmt.Errorf("transport must be %q or %q (got %q)", TransportStdio, TransportHTTP, c.Transport)
	}
	if c.Listen.Port < 1 || c.Listen.Port > 65535 {
		return fmt.Errorf("listen.port %d out of range (1-65535)", c.Listen.Port)
	}
	return nil
}
