// Package mcp implements the server side of the Model Context
// Protocol: JSON-RPC 2.0 message handling with tool discovery and
// invocation, served over stdio or streamable HTTP.
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/driftmail/mcp-imap/internal/tools"
)

// protocolVersion is the MCP protocol version we advertise during
// initialization.
const protocolVersion = "2024-11-05"

// ContentBlock is a single content item in a tools/call result.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// callToolResult is the result payload of a tools/call response. Tool
// execution failures are reported in-band via IsError so one failing
// call never breaks the session.
type callToolResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// callToolParams is the parameter payload of a tools/call request.
type callToolParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// toolDefinition is an MCP tool as presented in tools/list.
type toolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// toolsListResult is the result payload of a tools/list response.
type toolsListResult struct {
	Tools []toolDefinition `json:"tools"`
}

// serverInfo identifies this server in the initialize response.
type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// serverCapabilities describes what this MCP server supports.
type serverCapabilities struct {
	Tools struct{} `json:"tools"`
}

// initializeResult is the full initialize response result.
type initializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    serverCapabilities `json:"capabilities"`
	ServerInfo      serverInfo         `json:"serverInfo"`
}

// Server dispatches MCP requests to a tool registry. It is stateless
// across requests — each tools/call is independent — so the same
// Server instance can back both the stdio and HTTP transports.
type Server struct {
	name     string
	version  string
	registry *tools.Registry
	logger   *slog.Logger
}

// NewServer creates an MCP server fronting the given tool registry.
func NewServer(name, version string, registry *tools.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		name:     name,
		version:  version,
		registry: registry,
		logger:   logger,
	}
}

// HandleMessage processes one raw JSON-RPC message and returns the
// response, or nil when the message is a notification. Protocol
// violations come back as JSON-RPC errors; they never panic or crash
// the serving process.
func (s *Server) HandleMessage(ctx context.Context, raw []byte) *Response {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		s.logger.Debug("unparseable JSON-RPC message", "error", err)
		return NewErrorResponse(nil, codeParseError, "Parse error", err.Error())
	}

	// Correlate every message's log lines without relying on client IDs.
	logger := s.logger.With("request_id", uuid.NewString(), "method", req.Method)
	logger.Debug("handling request")

	switch req.Method {
	case "initialize":
		return s.handleInitialize(&req)
	case "notifications/initialized":
		logger.Debug("client completed handshake")
		return nil
	case "tools/list":
		return s.handleToolsList(&req)
	case "tools/call":
		return s.handleToolsCall(ctx, &req, logger)
	case "ping":
		return NewResponse(req.ID, struct{}{})
	default:
		if req.IsNotification() {
			logger.Debug("ignoring unknown notification")
			return nil
		}
		return NewErrorResponse(req.ID, codeMethodNotFound, "Method not found", req.Method)
	}
}

func (s *Server) handleInitialize(req *Request) *Response {
	return NewResponse(req.ID, initializeResult{
		ProtocolVersion: protocolVersion,
		ServerInfo:      serverInfo{Name: s.name, Version: s.version},
	})
}

func (s *Server) handleToolsList(req *Request) *Response {
	list := s.registry.List()
	defs := make([]toolDefinition, 0, len(list))
	for _, t := range list {
		defs = append(defs, toolDefinition{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	return NewResponse(req.ID, toolsListResult{Tools: defs})
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request, logger *slog.Logger) *Response {
	var params callToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return NewErrorResponse(req.ID, codeInvalidRequest, "Invalid params", err.Error())
	}

	logger.Info("tool call", "tool", params.Name)

	text, err := s.registry.Execute(ctx, params.Name, params.Arguments)
	if err != nil {
		// Tool failures are results, not protocol errors: the client
		// sees a typed failure message and the session stays healthy.
		logger.Warn("tool call failed", "tool", params.Name, "error", err)
		return NewResponse(req.ID, callToolResult{
			Content: []ContentBlock{{Type: "text", Text: err.Error()}},
			IsError: true,
		})
	}

	return NewResponse(req.ID, callToolResult{
		Content: []ContentBlock{{Type: "text", Text: text}},
	})
}
