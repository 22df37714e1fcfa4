// Package version provides build version information for gemini-search.
// Variables are set at build time via ldflags:
//
//	go build -ldflags="-X github.com/jpl-au/gemini-search/internal/version.Version=v0.2.0 \
//	  -X github.com/jpl-au/gemini-search/internal/version.GitCommit=abc123 \
//	  -X github.com/jpl-au/gemini-search/internal/version.BuildTime=2026-01-15T10:30:00Z"
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build information. Set via ldflags at build time.
var (
	Version   = "dev"     // Version tag (e.g., "v0.2.0")
	GitCommit = "unknown" // Short git commit hash
	BuildTime = "unknown" // RFC3339 build timestamp
)

// Info holds structured version information.
type Info struct {
	BuildTag   string `json:"build_tag"`   // Version tag (e.g., "v0.2.0" or "dev")
	MCPVersion string `json:"mcp_version"` // Server version advertised over MCP
	BuildTime  string `json:"build_time"`  // RFC3339 build timestamp
	GitCommit  string `json:"git_commit"`  // Short git commit hash
	GoVersion  string `json:"go_version"`  // Go runtime version
	Platform   string `json:"platform"`    // OS and architecture (e.g., "darwin arm64")
}

// ServerVersion is the version advertised to MCP clients. It tracks the
// protocol surface rather than the build.
const ServerVersion = "0.1.1"

// Get returns the current version information.
func Get() Info {
	return Info{
		BuildTag:   Version,
		MCPVersion: ServerVersion,
		BuildTime:  BuildTime,
		GitCommit:  GitCommit,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s %s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a formatted version string suitable for display.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Build Tag:    %s\n", i.BuildTag)
	fmt.Fprintf(&b, "MCP Version:  %s\n", i.MCPVersion)
	fmt.Fprintf(&b, "Build Time:   %s\n", i.BuildTime)
	fmt.Fprintf(&b, "Go Version:   %s\n", i.GoVersion)
	fmt.Fprintf(&b, "Platform:     %s\n", i.Platform)
	fmt.Fprintf(&b, "Git Commit:   %s\n", i.GitCommit)
	return b.String()
}

// Short returns just the version string (e.g., "v0.2.0" or "dev").
func Short() string {
	return Version
}
