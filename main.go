package main

import (
	"github.com/jpl-au/gemini-search/cmd"

	// Import extensions - each registers itself via init()
	_ "github.com/jpl-au/gemini-search/extension/all"
)

func main() {
	cmd.Execute()
}
