package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// maxLineSize bounds a single newline-delimited JSON-RPC message on
// stdio. 10 MiB leaves room for large base64 attachment results.
const maxLineSize = 10 << 20

// ServeStdio reads newline-delimited JSON-RPC messages from r and
// writes responses to w until r is exhausted or ctx is cancelled.
// Structured logs must go elsewhere (stderr) — w carries only
// protocol messages.
func (s *Server) ServeStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	s.logger.Info("serving MCP over stdio")

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp := s.HandleMessage(ctx, line)
		if resp == nil {
			continue
		}

		out, err := json.Marshal(resp)
		if err != nil {
			return fmt.Errorf("marshal response: %w", err)
		}
		if _, err := w.Write(append(out, '\n')); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	s.logger.Info("stdio stream closed, shutting down")
	return nil
}
