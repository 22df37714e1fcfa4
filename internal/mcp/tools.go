// tools.go implements the google_search tool: its descriptor, argument
// validation and the call into the search backend.
//
// The endpoint is closed over this one tool. Validation runs in a fixed
// order (tool name, argument presence, query type) and stops at the first
// failure so clients always see the most basic problem first.

package mcp

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jpl-au/gemini-search/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolName is the only tool this server exposes.
const ToolName = "google_search"

const (
	toolDescription  = "Performs a web search using Google Search (via the Gemini API) and returns the results. This tool is useful for finding information on the internet based on a query."
	queryDescription = "The search query to find information on the web."
)

// Searcher runs a grounded web search and returns the generated text.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
	Model() string
}

// Descriptor returns the google_search tool definition.
func Descriptor() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription(toolDescription),
		mcp.WithString("query", mcp.Required(), mcp.Description(queryDescription)),
	)
}

// Endpoint validates tool invocations and delegates them to a Searcher.
type Endpoint struct {
	searcher Searcher
	tool     mcp.Tool
}

// NewEndpoint creates an endpoint backed by s.
func NewEndpoint(s Searcher) *Endpoint {
	return &Endpoint{searcher: s, tool: Descriptor()}
}

// Tools returns the tools advertised on discovery.
func (e *Endpoint) Tools() []mcp.Tool {
	return []mcp.Tool{e.tool}
}

// searchArgs is the validated argument set of google_search.
type searchArgs struct {
	Query string
}

// parseArgs checks args against the google_search schema: a present
// argument object holding a string "query". Falsy JSON values (null,
// false, 0, "") count as absent.
func parseArgs(args any) (searchArgs, *ToolError) {
	if absent(args) {
		return searchArgs{}, errMissingArgs
	}
	m, ok := args.(map[string]any)
	if !ok {
		return searchArgs{}, errInvalidQuery
	}
	q, ok := m["query"].(string)
	if !ok {
		return searchArgs{}, errInvalidQuery
	}
	return searchArgs{Query: q}, nil
}

func absent(args any) bool {
	switch v := args.(type) {
	case nil:
		return true
	case bool:
		return !v
	case float64:
		return v == 0
	case string:
		return v == ""
	}
	return false
}

// Call runs the named tool. Every returned error is a *ToolError.
func (e *Endpoint) Call(ctx context.Context, name string, args any) (*mcp.CallToolResult, error) {
	id := uuid.NewString()
	l := log.Event("mcp:"+ToolName, "search").
		Model(e.searcher.Model()).
		Detail("invocation", id)

	res, terr := e.call(ctx, id, name, args, l)
	if terr != nil {
		slog.Warn("tool call failed", "invocation", id, "tool", name, "code", terr.Code, "error", terr.Message)
		l.Code(terr.Code).Write(terr)
		return nil, terr
	}
	l.Write(nil)
	return res, nil
}

func (e *Endpoint) call(ctx context.Context, id, name string, args any, l *log.Builder) (*mcp.CallToolResult, *ToolError) {
	if name != ToolName {
		l.Detail("tool", name)
		return nil, unknownTool(name)
	}
	a, terr := parseArgs(args)
	if terr != nil {
		return nil, terr
	}
	l.Query(a.Query)

	slog.Debug("searching", "invocation", id, "model", e.searcher.Model())
	text, err := e.searcher.Search(ctx, a.Query)
	if err != nil {
		return nil, searchFailed(err)
	}
	l.ResultBytes(len(text))
	return mcp.NewToolResultText(text), nil
}

// handle adapts Call to the mcp-go tool handler signature.
func (e *Endpoint) handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return e.Call(ctx, req.Params.Name, req.Params.Arguments)
}
