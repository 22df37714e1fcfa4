// Package extension provides the plugin architecture for gemini-search.
// Extensions group related CLI commands and register at init time, so the
// root command never needs to know which commands exist.
package extension

import (
	"github.com/jpl-au/gemini-search/internal/config"
	"github.com/spf13/cobra"
)

// Extension defines the contract for gemini-search extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command
}

// Initializable extensions receive the resolved configuration before any of
// their commands run. Init is called at most once per process.
type Initializable interface {
	Extension
	Init(cfg config.Config) error
}

// Configless is an optional interface for extensions with commands that
// run without configuration (and therefore without an API key).
type Configless interface {
	NoConfigCommands() []string
}
