// root.go defines the root command and CLI execution entry point.
//
// Separated from init_extensions.go to isolate cobra setup from extension
// initialisation logic.
//
// Design: PersistentPreRunE resolves configuration lazily - only commands
// that talk to Gemini trigger it. This lets version and guide run without an
// API key. Running the binary with no subcommand serves MCP over stdio, which
// is what MCP clients launch.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/gemini-search/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gemini-search",
	Short: "MCP server exposing Google Search via the Gemini API",
	Long: `An MCP (Model Context Protocol) server with a single google_search tool.
Queries are answered by Gemini with Google Search grounding enabled.

Run without a subcommand to serve MCP over stdio.`,
	SilenceUsage: true,
	PersistentPreRunE: func(c *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		if noConfigCommands[topLevelCmdName(c)] {
			return nil
		}
		if err := initExtensions(); err != nil {
			if JSON() {
				_ = PrintJSON(map[string]string{"error": err.Error()})
				c.SilenceErrors = true
			}
			return err
		}
		return nil
	},
}

// RunE is assigned in init to avoid an initialization cycle with serveCmd.
func init() {
	rootCmd.RunE = func(c *cobra.Command, args []string) error {
		serve := serveCmd()
		if serve == nil || serve.RunE == nil {
			return c.Help()
		}
		return serve.RunE(serve, args)
	}
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For the root command itself it returns the root's name.
func topLevelCmdName(c *cobra.Command) string {
	for c.HasParent() && c.Parent().HasParent() {
		c = c.Parent()
	}
	return c.Name()
}

// serveCmd returns the registered serve command, or nil.
func serveCmd() *cobra.Command {
	c, _, err := rootCmd.Find([]string{"serve"})
	if err != nil || c == rootCmd {
		return nil
	}
	return c
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, registers extensions and executes the command.
// Exit code 1 indicates error.
func Execute() {
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	if wd, err := os.Getwd(); err == nil {
		log.SetProject(wd)
	}

	registerExtensions()
	err := rootCmd.Execute()
	log.Close()

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
