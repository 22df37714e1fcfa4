// Package search provides the one-off "search" command, running the same
// grounded Gemini query the MCP tool runs and printing the result.
package search

import (
	"github.com/jpl-au/gemini-search/extension"
	"github.com/jpl-au/gemini-search/internal/config"
	"github.com/jpl-au/gemini-search/internal/gemini"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	client *gemini.Client
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search".
func (e *Extension) Name() string { return "search" }

// Init builds the Gemini client from the resolved configuration.
func (e *Extension) Init(cfg config.Config) error {
	e.client = gemini.New(cfg)
	return nil
}

// Commands returns the search command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{e.newSearchCmd()}
}
