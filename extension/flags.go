// flags.go defines constants for CLI flag names shared by extensions.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "raw" -> FlagRaw).

package extension

// Flag name constants for CLI commands.
const (
	FlagRaw   = "raw"   // Raw output without rendering
	FlagStyle = "style" // Glamour style for terminal rendering
	FlagList  = "list"  // List mode
)
