// Package mcp implements a minimal client for the Model Context Protocol
// over SSE transport. It covers the session handshake, tool discovery and
// tool invocation needed to drive a remote MCP server.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/baalimago/chatbox/internal/utils"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

const protocolVersion = "2025-06-18"

type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// Notification is a Request without an ID. The server must not reply to it.
type Notification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
}

type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToolSpec describes one tool exposed by the server via tools/list.
type ToolSpec struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
}

type InputSchema struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Required   []string       `json:"required"`
}

type Config struct {
	// Name prefixes log lines, to tell servers apart.
	Name string
	// URL is the SSE endpoint of the server.
	URL string
	// Env is set as headers on every request, e.g. Authorization.
	Env map[string]string
	// ConnectTimeout bounds the SSE connect and the session handshake.
	ConnectTimeout time.Duration
	// ReadTimeout bounds each individual rpc roundtrip.
	ReadTimeout time.Duration
}

// ConfigFromEnv configures the taiga MCP connection, falling back to a
// locally hosted server.
func ConfigFromEnv() Config {
	return Config{
		Name: "taiga",
		URL:  utils.Getenv("MCP_SERVER_URL", "http://localhost:8000/sse"),
	}
}

// Client holds one MCP session. It correlates JSON-RPC responses by id, so
// calls are expected to be sequential.
type Client struct {
	conf   Config
	in     chan<- any
	out    <-chan any
	done   <-chan struct{}
	cancel context.CancelFunc

	mu  sync.Mutex
	seq int
}

// Connect opens the SSE stream and performs the initialize handshake. The
// session lives until ctx is cancelled or Close is called.
func Connect(ctx context.Context, conf Config) (*Client, error) {
	if conf.ConnectTimeout == 0 {
		conf.ConnectTimeout = 10 * time.Second
	}
	if conf.ReadTimeout == 0 {
		conf.ReadTimeout = 60 * time.Second
	}
	streamCtx, cancel := context.WithCancel(ctx)
	in, out, err := startStream(streamCtx, conf)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to connect to MCP server: %w", err)
	}
	c := &Client{
		conf:   conf,
		in:     in,
		out:    out,
		done:   streamCtx.Done(),
		cancel: cancel,
	}

	handshakeCtx, handshakeCancel := context.WithTimeout(ctx, conf.ConnectTimeout)
	defer handshakeCancel()
	_, err = c.rpc(handshakeCtx, "initialize", map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities":    map[string]any{},
		"clientInfo": map[string]any{
			"name":    "chatbox",
			"version": "1.0.0",
		},
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize MCP session: %w", err)
	}
	if err := c.notify(handshakeCtx, "notifications/initialized"); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to confirm MCP initialization: %w", err)
	}
	return c, nil
}

// Close tears down the stream. In-flight and subsequent calls fail with a
// connection closed error.
func (c *Client) Close() {
	c.cancel()
}

// Tools lists the tools the server exposes.
func (c *Client) Tools(ctx context.Context) ([]ToolSpec, error) {
	result, err := c.rpc(ctx, "tools/list", map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	var parsed struct {
		Tools []ToolSpec `json:"tools"`
	}
	if err := json.Unmarshal(result, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode tools: %w", err)
	}
	return parsed.Tools, nil
}

// Call invokes a tool and returns the concatenated text content of its
// result. A result flagged isError is returned as an error.
func (c *Client) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	nonNullableArgs := make(map[string]any)
	if len(args) != 0 {
		nonNullableArgs = args
	}
	result, err := c.rpc(ctx, "tools/call", map[string]any{
		"name":      name,
		"arguments": nonNullableArgs,
	})
	if err != nil {
		return "", err
	}
	var parsed struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	}
	if err := json.Unmarshal(result, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode result: %w", err)
	}
	var buf bytes.Buffer
	for _, content := range parsed.Content {
		if content.Type == "text" {
			buf.WriteString(content.Text)
		}
	}
	if parsed.IsError {
		return "", errors.New(buf.String())
	}
	return buf.String(), nil
}

func (c *Client) nextID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

func (c *Client) rpc(ctx context.Context, method string, params any) (json.RawMessage, error) {
	id := c.nextID()
	req := Request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.Noticef("mcp_%v request: %v\n", c.conf.Name, debug.IndentedJsonFmt(req))
	}
	select {
	case c.in <- req:
	case <-c.done:
		return nil, fmt.Errorf("connection closed")
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	deadline := time.NewTimer(c.conf.ReadTimeout)
	defer deadline.Stop()
	for {
		select {
		case msg, ok := <-c.out:
			if !ok {
				return nil, fmt.Errorf("connection closed")
			}
			raw, ok := msg.(json.RawMessage)
			if !ok {
				continue
			}
			var resp Response
			if err := json.Unmarshal(raw, &resp); err != nil {
				continue
			}
			if resp.ID != id {
				continue
			}
			if resp.Error != nil {
				return nil, errors.New(resp.Error.Message)
			}
			return resp.Result, nil
		case <-deadline.C:
			return nil, fmt.Errorf("timed out waiting for %v response after %v", method, c.conf.ReadTimeout)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (c *Client) notify(ctx context.Context, method string) error {
	select {
	case c.in <- Notification{JSONRPC: "2.0", Method: method}:
		return nil
	case <-c.done:
		return fmt.Errorf("connection closed")
	case <-ctx.Done():
		return ctx.Err()
	}
}
