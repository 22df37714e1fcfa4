// Package all imports all built-in gemini-search extensions.
// Import this package to register all commands.
package all

import (
	// Each registers itself via init()
	_ "github.com/jpl-au/gemini-search/extension/core"
	_ "github.com/jpl-au/gemini-search/extension/search"
)
