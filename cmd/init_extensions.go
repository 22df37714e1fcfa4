// init_extensions.go handles configuration loading and command registration.
//
// Separated from root.go to isolate the initialisation logic that reads the
// environment, resolves configuration and wires it into extensions.
//
// Design: Extensions register during init() but receive configuration only
// when a command that needs it runs. Configuration is resolved exactly once
// per process and never re-read, so every request served by this process
// sees the same model, endpoint and key.

package cmd

import (
	"fmt"
	"sync"

	"github.com/jpl-au/gemini-search/extension"
	"github.com/jpl-au/gemini-search/internal/config"
)

// noConfigCommands lists commands that run without an API key.
// Built from bootstrap commands plus extension-declared configless commands.
var noConfigCommands map[string]bool

// buildNoConfigCommands creates the set of commands that skip configuration.
func buildNoConfigCommands() map[string]bool {
	cmds := map[string]bool{
		"help":       true,
		"completion": true,
	}
	for _, ext := range extension.All() {
		if c, ok := ext.(extension.Configless); ok {
			for _, name := range c.NoConfigCommands() {
				cmds[name] = true
			}
		}
	}
	return cmds
}

var (
	cfg      config.Config
	initOnce sync.Once
	initErr  error
)

// Config returns the resolved configuration. Zero until initExtensions ran.
func Config() config.Config { return cfg }

// initExtensions resolves configuration and injects it into extensions.
// A missing API key fails here, before any command starts serving.
func initExtensions() error {
	initOnce.Do(func() {
		if err := config.LoadEnvFile(EnvFile()); err != nil {
			initErr = err
			return
		}
		c, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		cfg = c

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(cfg); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, c := range ext.Commands() {
				rootCmd.AddCommand(c)
			}
		}
		noConfigCommands = buildNoConfigCommands()
	})
}
