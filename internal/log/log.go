// Package log provides audit logging for gemini-search operations.
// Entries are stored in ~/.gemini-search/log/audit.db and record every MCP
// tool invocation and CLI search.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("mcp:google_search", "search").
//		Query(query).
//		Model(cfg.Model).
//		Detail("invocation", id).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// EnvAudit disables audit logging when set to "off".
const EnvAudit = "GEMINI_SEARCH_AUDIT"

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "mcp:google_search", "search:search"
	Action string // verb: search, list
	Query  string // input: search query
	Model  string // upstream model identifier

	// Output fields
	ResultBytes int // size of the returned text
	Code        int // protocol error code, 0 on success

	// Timing
	Start int64 // unix milliseconds when Event() called
	End   int64 // unix milliseconds when Write() called

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "search:search")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:google_search")
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().UnixMilli(),
		},
	}
}

// Query sets the search query.
func (b *Builder) Query(q string) *Builder {
	b.entry.Query = q
	return b
}

// Model sets the upstream model used.
func (b *Builder) Model(m string) *Builder {
	b.entry.Model = m
	return b
}

// ResultBytes records the size of the text returned to the caller.
func (b *Builder) ResultBytes(n int) *Builder {
	b.entry.ResultBytes = n
	return b
}

// Code records the protocol error code of a failed invocation.
func (b *Builder) Code(code int) *Builder {
	b.entry.Code = code
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry, deriving success/failure from err.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().UnixMilli()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil || os.Getenv(EnvAudit) == "off" {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}
	// Invocations log concurrently; one connection serialises the writes.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute working directory of the process.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
