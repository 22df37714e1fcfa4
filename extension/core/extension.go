// Package core provides the core extension for gemini-search.
// It registers commands: serve, config, guide, version.
package core

import (
	"github.com/jpl-au/gemini-search/extension"
	"github.com/jpl-au/gemini-search/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	cfg config.Config
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Configless    = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Init stores the resolved configuration for serve and config.
func (e *Extension) Init(cfg config.Config) error {
	e.cfg = cfg
	return nil
}

// Commands returns all core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newServeCmd(),
		e.newConfigCmd(),
		newGuideCmd(),
		newVersionCmd(),
	}
}

// NoConfigCommands returns commands that work without an API key.
// guide: embedded documentation, useful before setup.
// version: displays build info.
func (e *Extension) NoConfigCommands() []string {
	return []string{"guide", "version"}
}
