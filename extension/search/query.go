// query.go implements the "gemini-search search" command.
//
// Terminal output is rendered as markdown with glamour since Gemini answers
// in markdown; pipes and --raw get the text unchanged.

package search

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/gemini-search/cmd"
	"github.com/jpl-au/gemini-search/extension"
	"github.com/jpl-au/gemini-search/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search the web via Gemini",
		Long: `Run a single Google Search grounded query through Gemini and print the answer.

  gemini-search search "go 1.25 release notes"
  gemini-search search --raw latest kubernetes version`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runSearch,
	}
	c.Flags().Bool(extension.FlagRaw, false, "Output raw text without rendering")
	c.Flags().String(extension.FlagStyle, "dark", "Glamour style for terminal output")
	return c
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	raw, _ := c.Flags().GetBool(extension.FlagRaw)
	style, _ := c.Flags().GetString(extension.FlagStyle)

	l := log.Event("search:search", "search").Query(query).Model(e.client.Model())
	text, err := e.client.Search(c.Context(), query)
	l.ResultBytes(len(text)).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"query": query, "model": e.client.Model(), "text": text})
	}

	if !raw && term.IsTerminal(int(os.Stdout.Fd())) {
		rendered, renderErr := glamour.Render(text, style)
		if renderErr == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return nil
		}
	}

	fmt.Fprintln(cmd.Out(), text)
	return nil
}
