package mcp

import (
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ToolError is a protocol-level failure of a tool invocation. Code is one of
// the JSON-RPC codes mcp.METHOD_NOT_FOUND, mcp.INVALID_PARAMS or
// mcp.INTERNAL_ERROR.
type ToolError struct {
	Code    int
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// unknownTool reports a call to a tool other than google_search.
func unknownTool(name string) *ToolError {
	return &ToolError{
		Code:    mcp.METHOD_NOT_FOUND,
		Message: fmt.Sprintf("Unknown tool: %s. Available tools: %s", name, ToolName),
	}
}

var (
	errMissingArgs = &ToolError{
		Code:    mcp.INVALID_PARAMS,
		Message: "Missing arguments. Required: query (string)",
	}
	errInvalidQuery = &ToolError{
		Code:    mcp.INVALID_PARAMS,
		Message: `Invalid arguments: query must be a string. Example: { "query": "search terms" }`,
	}
)

// searchFailed wraps an upstream failure.
func searchFailed(err error) *ToolError {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg == "" {
		msg = "Unknown error"
	}
	return &ToolError{
		Code:    mcp.INTERNAL_ERROR,
		Message: fmt.Sprintf("Google Search failed: %s. Please check your GEMINI_API_KEY and network connection.", msg),
	}
}

// codeOf returns the protocol code carried by err, or mcp.INTERNAL_ERROR.
func codeOf(err error) int {
	var te *ToolError
	if errors.As(err, &te) {
		return te.Code
	}
	return mcp.INTERNAL_ERROR
}
