// serve.go implements the "gemini-search serve" command for MCP server operation.
//
// Separated from extension.go because serve has unique lifecycle requirements.
// Unlike other commands that run and exit, serve blocks handling MCP requests
// over stdio until the client closes stdin.

package core

import (
	"github.com/jpl-au/gemini-search/internal/gemini"
	"github.com/jpl-au/gemini-search/internal/mcp"
	"github.com/spf13/cobra"
)

func (e *Extension) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio exposing the
google_search tool.

Requires GEMINI_API_KEY. See 'gemini-search guide mcp' for client setup.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcp.Serve(gemini.New(e.cfg))
		},
	}
}
