// Package config builds the process-wide search configuration.
// Values come from the environment (optionally seeded from a .env file),
// falling back to a YAML file and then to built-in defaults:
//
//	environment > .gemini-search/config.yaml (local, else ~/.gemini-search) > defaults
//
// The API key is only ever read from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingAPIKey is returned when GEMINI_API_KEY is not set.
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY environment variable is required. Get your API key from https://api-key.info")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Environment variables read by Load.
const (
	EnvAPIKey    = "GEMINI_API_KEY"
	EnvModel     = "GEMINI_MODEL"
	EnvBaseURL   = "GEMINI_BASE_URL"
	EnvTimeout   = "GEMINI_TIMEOUT"
	EnvRateLimit = "GEMINI_RATE_LIMIT"
)

// Defaults applied when neither the environment nor the config file sets a value.
const (
	DefaultModel   = "gemini-2.5-pro"
	DefaultBaseURL = "https://api-key.info"
)

// File is the optional YAML configuration file.
type File struct {
	Model     string  `yaml:"model,omitempty"`
	BaseURL   string  `yaml:"base_url,omitempty"`
	Timeout   string  `yaml:"timeout,omitempty"`
	RateLimit float64 `yaml:"rate_limit,omitempty"`
}

// Config is the resolved search configuration. It is built once at startup
// and passed by value, so every request sees identical settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string

	// Timeout bounds a single upstream call. Zero means no timeout.
	Timeout time.Duration
	// RateLimit caps outbound requests per second. Zero means unlimited.
	RateLimit float64

	// Source is the config file that contributed values, if any.
	Source string
}

// Validate checks that all configured values are within acceptable bounds.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Model == "" {
		return fmt.Errorf("%w: model must not be empty", ErrInvalidValue)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base_url must be an absolute URL, got %q", ErrInvalidValue, c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative, got %s", ErrInvalidValue, c.Timeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("%w: rate_limit must not be negative, got %g", ErrInvalidValue, c.RateLimit)
	}
	return nil
}

// Redacted returns the API key with all but the last four characters masked.
func (c Config) Redacted() string {
	if len(c.APIKey) <= 4 {
		return strings.Repeat("*", len(c.APIKey))
	}
	return strings.Repeat("*", len(c.APIKey)-4) + c.APIKey[len(c.APIKey)-4:]
}

// LocalPath returns the path to the local (working directory) config file.
func LocalPath() string {
	return filepath.Join(".gemini-search", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file.
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gemini-search", "config.yaml")
}

// pathFunc resolves the config file to read. Tests override it.
var pathFunc = defaultPath

func defaultPath() string {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LocalPath()
	}
	return GlobalPath()
}

// LoadEnvFile seeds the environment from a .env file. Variables already set
// are left alone. An empty path means ./.env, which may be absent; an explicit
// path must exist.
func LoadEnvFile(path string) error {
	if path == "" {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load resolves the configuration from the config file and the environment.
// A missing API key returns ErrMissingAPIKey.
func Load() (Config, error) {
	f, src, err := readFile(pathFunc())
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIKey:  os.Getenv(EnvAPIKey),
		Model:   first(os.Getenv(EnvModel), f.Model, DefaultModel),
		BaseURL: strings.TrimRight(first(os.Getenv(EnvBaseURL), f.BaseURL, DefaultBaseURL), "/"),
		Source:  src,
	}

	if raw := first(os.Getenv(EnvTimeout), f.Timeout); raw != "" {
		// cast reads a bare number as nanoseconds.
		if _, err := cast.ToFloat64E(raw); err == nil {
			return Config{}, fmt.Errorf("%w: timeout %q needs a unit, e.g. %ss", ErrInvalidValue, raw, raw)
		}
		d, err := cast.ToDurationE(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, raw, err)
		}
		cfg.Timeout = d
	}

	cfg.RateLimit = f.RateLimit
	if raw := os.Getenv(EnvRateLimit); raw != "" {
		r, err := cast.ToFloat64E(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: rate limit %q: %v", ErrInvalidValue, raw, err)
		}
		cfg.RateLimit = r
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// readFile parses the YAML config at path. A missing file yields zero values.
func readFile(path string) (File, string, error) {
	var f File
	if path == "" {
		return f, "", nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, "", nil
	}
	if err != nil {
		return f, "", fmt.Errorf("cannot read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, "", fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	return f, path, nil
}

// first returns the first non-empty value.
func first(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
