// mcp-imap bridges the Model Context Protocol to an IMAP mailbox.
//
// It exposes five tools (list_mailboxes, search_messages, get_message,
// download_attachment, set_seen) over MCP, served on stdio or
// streamable HTTP. Configuration is loaded from a single YAML file
// discovered automatically (see [config.DefaultSearchPaths]).
//
// Usage:
//
//	mcp-imap serve                 Serve MCP on the configured transport
//	mcp-imap serve -config x.yaml  Serve with an explicit config file
//	mcp-imap version               Print version and build information
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/driftmail/mcp-imap/internal/buildinfo"
	"github.com/driftmail/mcp-imap/internal/config"
	"github.com/driftmail/mcp-imap/internal/mailbox"
	"github.com/driftmail/mcp-imap/internal/mcp"
	"github.com/driftmail/mcp-imap/internal/tools"
)

// main is intentionally minimal. It constructs the OS-level environment
// (context, stdio, argv) and delegates immediately to [run]. This keeps
// os.Exit, os.Stdin, and os.Args out of the application logic so the
// full startup-to-shutdown lifecycle can be driven from tests.
func main() {
	ctx := context.Background()

	if err := run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// run is the real entry point for the mcp-imap command. All OS-level
// dependencies are injected as parameters. On the stdio transport,
// stdin/stdout carry only protocol messages; structured logs always go
// to stderr. We parse args manually rather than using the flag package
// to avoid global state that interferes with parallel tests.
func run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string) error {
	command := "serve"
	var configPath, transport string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "serve", "version":
			command = args[i]
		case "-config", "--config":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a path argument", args[i])
			}
			i++
			configPath = args[i]
		case "-transport", "--transport":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires an argument (stdio or http)", args[i])
			}
			i++
			transport = args[i]
		default:
			return fmt.Errorf("unknown argument %q", args[i])
		}
	}

	if command == "version" {
		fmt.Fprintln(stdout, buildinfo.String())
		return nil
	}

	path, err := config.FindConfig(configPath)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if transport != "" {
		cfg.Transport = transport
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	logger.Info("starting", "build", buildinfo.String(), "config", path,
		"imap_host", cfg.IMAP.Host, "transport", cfg.Transport)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := tools.NewRegistry()
	registry.SetMailboxTools(mailbox.NewTools(cfg.IMAP, logger))

	server := mcp.NewServer("mcp-imap", buildinfo.Version, registry, logger)

	switch cfg.Transport {
	case config.TransportHTTP:
		return server.ListenAndServe(ctx, cfg.Listen.Addr())
	default:
		return server.ServeStdio(ctx, stdin, stdout)
	}
}
