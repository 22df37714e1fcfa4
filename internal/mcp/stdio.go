// stdio.go carries JSON-RPC messages over newline-delimited streams.
//
// tools/call is answered by the Endpoint directly so that its error codes
// (-32601, -32602, -32603) reach the client unchanged. Everything else
// (initialize, ping, tools/list, notifications) goes to the mcp-go server.
//
// Each message is handled on its own goroutine; responses are written
// whole, one per line, under a mutex.

package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// envelope holds the routing fields of an incoming message.
type envelope struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

// stream routes messages read from in to the endpoint or the mcp-go server
// and writes responses to out.
type stream struct {
	srv      *server.MCPServer
	endpoint *Endpoint

	mu  sync.Mutex
	out io.Writer
}

// serve reads messages until in reaches EOF or ctx is cancelled, then waits
// for in-flight requests to finish writing their responses.
func (s *stream) serve(ctx context.Context, in io.Reader) error {
	lines := make(chan []byte)
	readErr := make(chan error, 1)

	go func() {
		r := bufio.NewReader(in)
		for {
			line, err := r.ReadBytes('\n')
			if len(line) > 0 {
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read stdin: %w", err)
		case line := <-lines:
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.handle(ctx, line)
			}()
		}
	}
}

// handle dispatches a single message.
func (s *stream) handle(ctx context.Context, raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.write(rpcResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      json.RawMessage("null"),
			Error:   &rpcError{Code: mcp.PARSE_ERROR, Message: "Parse error"},
		})
		return
	}

	if env.Method == string(mcp.MethodToolsCall) {
		// A call without an id is a notification and gets no response.
		if len(env.ID) == 0 {
			return
		}
		s.write(s.callTool(ctx, env))
		return
	}

	if resp := s.srv.HandleMessage(ctx, raw); resp != nil {
		s.write(resp)
	}
}

// callTool answers a tools/call request through the endpoint.
func (s *stream) callTool(ctx context.Context, env envelope) rpcResponse {
	resp := rpcResponse{JSONRPC: mcp.JSONRPC_VERSION, ID: env.ID}

	var params mcp.CallToolParams
	if len(env.Params) > 0 {
		if err := json.Unmarshal(env.Params, &params); err != nil {
			resp.Error = &rpcError{Code: mcp.INVALID_PARAMS, Message: fmt.Sprintf("Invalid params: %v", err)}
			return resp
		}
	}

	res, err := s.endpoint.Call(ctx, params.Name, params.Arguments)
	if err != nil {
		msg := err.Error()
		var te *ToolError
		if errors.As(err, &te) {
			msg = te.Message
		}
		resp.Error = &rpcError{Code: codeOf(err), Message: msg}
		return resp
	}
	resp.Result = res
	return resp
}

// write marshals v and writes it as one line.
func (s *stream) write(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshal response", "error", err)
		return
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.out.Write(data); err != nil {
		slog.Error("write response", "error", err)
	}
}
