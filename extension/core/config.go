// config.go implements the "gemini-search config" command.
//
// Shows the configuration this process resolved from the environment, the
// .env file and the YAML config file. The API key is always redacted.

package core

import (
	"fmt"

	"github.com/jpl-au/gemini-search/cmd"
	"github.com/jpl-au/gemini-search/internal/config"
	"github.com/spf13/cobra"
)

func (e *Extension) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [key]",
		Short: "Show the effective configuration",
		Long: `Show the effective configuration.

  gemini-search config           # show all values
  gemini-search config model     # show one value

Precedence: environment > .gemini-search/config.yaml (local, else global) > defaults.
GEMINI_API_KEY is only read from the environment (or a .env file).`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runConfig,
	}
}

func (e *Extension) runConfig(_ *cobra.Command, args []string) error {
	if len(args) == 1 {
		v, err := e.cfg.Get(args[0])
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)
		return nil
	}

	if cmd.JSON() {
		return cmd.PrintJSON(e.cfg.Map())
	}
	for _, k := range config.ValidKeys() {
		v, _ := e.cfg.Get(k)
		fmt.Fprintf(cmd.Out(), "%s: %s\n", k, v)
	}
	return nil
}
