// guide.go implements the "gemini-search guide" command.
//
// Guides are embedded in the binary via the guide package. Terminal output
// gets glamour rendering; pipe/redirect gets raw markdown.

package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/gemini-search/cmd"
	"github.com/jpl-au/gemini-search/extension"
	"github.com/jpl-au/gemini-search/guide"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newGuideCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the gemini-search usage guide",
		Long: `Outputs the gemini-search guide.

  gemini-search guide          # main guide
  gemini-search guide mcp      # MCP client setup
  gemini-search guide config   # configuration reference
  gemini-search guide --list   # available topics`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGuide,
	}
	c.Flags().Bool(extension.FlagList, false, "List available topics")
	c.Flags().Bool(extension.FlagRaw, false, "Output raw markdown without rendering")
	return c
}

func runGuide(c *cobra.Command, args []string) error {
	if list, _ := c.Flags().GetBool(extension.FlagList); list {
		topics, err := guide.Topics()
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		if cmd.JSON() {
			return cmd.PrintJSON(topics)
		}
		for _, t := range topics {
			fmt.Fprintf(cmd.Out(), "%-8s %s\n", t.Name, t.Title)
		}
		return nil
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	content, err := guide.Get(name)
	if err != nil {
		available, listErr := guide.List()
		if listErr != nil {
			return listErr
		}
		return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"topic": name, "content": content})
	}

	raw, _ := c.Flags().GetBool(extension.FlagRaw)
	if !raw && term.IsTerminal(int(os.Stdout.Fd())) {
		rendered, err := glamour.Render(content, "dark")
		if err == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return nil
		}
	}

	fmt.Fprint(cmd.Out(), content)
	return nil
}
