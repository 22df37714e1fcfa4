// The cmd/ package holds CLI integration tests that exercise the full stack:
// command parsing -> configuration -> Gemini client -> MCP transport.
//
// The binary is built once and run against an httptest upstream reached
// through GEMINI_BASE_URL. Every run gets a clean environment: HOME points
// at a temp dir so no real config file or audit database is touched.

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the gemini-search binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "gemini-search-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "gemini-search"
		if os.PathSeparator == '\\' {
			binaryName = "gemini-search.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Project root is the parent of cmd/
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
	vars   map[string]string
}

// newTestEnv creates an isolated working directory and HOME with a fake
// API key set. Tests that need no key call unset.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		binary: buildBinary(t),
		vars: map[string]string{
			"GEMINI_API_KEY":      "test-key",
			"GEMINI_SEARCH_AUDIT": "off",
		},
	}
	return env
}

// set adds or replaces an environment variable for subsequent runs.
func (e *testEnv) set(k, v string) { e.vars[k] = v }

// unset removes an environment variable for subsequent runs.
func (e *testEnv) unset(k string) { delete(e.vars, k) }

// upstream starts a fake generateContent endpoint answering with text and
// points GEMINI_BASE_URL at it. The returned slice records request paths.
func (e *testEnv) upstream(text string) *[]string {
	e.t.Helper()
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &req)

		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()

		q := ""
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			q = req.Contents[0].Parts[0].Text
		}
		body, _ := json.Marshal(map[string]any{
			"candidates": []any{map[string]any{"content": map[string]any{
				"parts": []any{map[string]any{"text": strings.ReplaceAll(text, "{query}", q)}},
			}}},
		})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	e.t.Cleanup(srv.Close)
	e.set("GEMINI_BASE_URL", srv.URL)
	return &paths
}

func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = []string{"HOME=" + e.home, "PATH=" + os.Getenv("PATH")}
	for k, v := range e.vars {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	return cmd
}

// run executes gemini-search with the given args and returns stdout.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("gemini-search %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes gemini-search and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdin executes gemini-search with stdin input and returns stdout and
// stderr separately.
func (e *testEnv) runStdin(input string, args ...string) (string, string, error) {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// writeFile creates a file relative to the working directory.
func (e *testEnv) writeFile(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatal(err)
	}
	return path
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// rpc builds a tools/call request line.
func rpc(id int, query string) string {
	return fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":"tools/call","params":{"name":"google_search","arguments":{"query":%q}}}`, id, query)
}
