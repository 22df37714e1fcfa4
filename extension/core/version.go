// version.go implements the version command.

package core

import (
	"fmt"

	"github.com/jpl-au/gemini-search/cmd"
	"github.com/jpl-au/gemini-search/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the build tag, the version advertised to MCP clients, build time,
Go version and platform.

  gemini-search version           # full details
  gemini-search version --short   # build tag only`,
		Args: cobra.NoArgs,
		Run: func(c *cobra.Command, _ []string) {
			if short, _ := c.Flags().GetBool("short"); short {
				if cmd.JSON() {
					_ = cmd.PrintJSON(map[string]string{"version": version.Short()})
					return
				}
				fmt.Fprintln(cmd.Out(), version.Short())
				return
			}
			info := version.Get()
			if cmd.JSON() {
				_ = cmd.PrintJSON(info)
				return
			}
			fmt.Fprint(cmd.Out(), info.String())
		},
	}
	c.Flags().Bool("short", false, "Print only the build tag")
	return c
}
