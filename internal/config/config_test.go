package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config file at a temp path and clears the environment
// variables Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	orig := pathFunc
	pathFunc = func() string { return p }
	t.Cleanup(func() { pathFunc = orig })

	for _, k := range []string{EnvAPIKey, EnvModel, EnvBaseURL, EnvTimeout, EnvRateLimit} {
		t.Setenv(k, "")
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv(EnvAPIKey, "secret-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "secret-key", cfg.APIKey)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Zero(t, cfg.Timeout)
	assert.Zero(t, cfg.RateLimit)
	assert.Empty(t, cfg.Source)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	isolate(t)
	t.Setenv(EnvModel, "gemini-2.5-flash")
	t.Setenv(EnvBaseURL, "http://localhost:1234")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvAPIKey, "k")
	t.Setenv(EnvModel, "gemini-2.5-flash")
	t.Setenv(EnvBaseURL, "https://example.test/")
	t.Setenv(EnvTimeout, "45s")
	t.Setenv(EnvRateLimit, "2.5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, "https://example.test", cfg.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.InDelta(t, 2.5, cfg.RateLimit, 0.0001)
}

func TestLoad_File(t *testing.T) {
	p := isolate(t)
	t.Setenv(EnvAPIKey, "k")
	require.NoError(t, os.WriteFile(p, []byte("model: from-file\nbase_url: http://file.test\ntimeout: 10s\nrate_limit: 3\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Model)
	assert.Equal(t, "http://file.test", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.InDelta(t, 3.0, cfg.RateLimit, 0.0001)
	assert.Equal(t, p, cfg.Source)

	t.Run("environment wins", func(t *testing.T) {
		t.Setenv(EnvModel, "from-env")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Model)
		assert.Equal(t, "http://file.test", cfg.BaseURL)
	})
}

func TestLoad_FileNeverSuppliesKey(t *testing.T) {
	p := isolate(t)
	require.NoError(t, os.WriteFile(p, []byte("api_key: nope\nmodel: m\n"), 0644))

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
		want error
	}{
		{name: "bad timeout", env: map[string]string{EnvTimeout: "soon"}, want: ErrInvalidValue},
		{name: "unitless timeout", env: map[string]string{EnvTimeout: "30"}, want: ErrInvalidValue},
		{name: "unitless file timeout", file: "timeout: 60\n", want: ErrInvalidValue},
		{name: "negative timeout", env: map[string]string{EnvTimeout: "-1s"}, want: ErrInvalidValue},
		{name: "bad rate limit", env: map[string]string{EnvRateLimit: "fast"}, want: ErrInvalidValue},
		{name: "negative rate limit", env: map[string]string{EnvRateLimit: "-1"}, want: ErrInvalidValue},
		{name: "relative base url", env: map[string]string{EnvBaseURL: "api.example"}, want: ErrInvalidValue},
		{name: "malformed yaml", file: "model: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := isolate(t)
			t.Setenv(EnvAPIKey, "k")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.file != "" {
				require.NoError(t, os.WriteFile(p, []byte(tt.file), 0644))
			}

			_, err := Load()
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("GEMINI_API_KEY=from-dotenv\nGEMINI_MODEL=dotenv-model\n"), 0644))

	// godotenv never overrides variables that are already set, including
	// empty ones, so unset them for this test.
	require.NoError(t, os.Unsetenv(EnvAPIKey))
	require.NoError(t, os.Unsetenv(EnvModel))
	t.Cleanup(func() {
		os.Unsetenv(EnvAPIKey)
		os.Unsetenv(EnvModel)
	})
	t.Setenv(EnvBaseURL, "http://already.set")

	require.NoError(t, LoadEnvFile(envPath))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.APIKey)
	assert.Equal(t, "dotenv-model", cfg.Model)

	t.Run("explicit path must exist", func(t *testing.T) {
		assert.Error(t, LoadEnvFile(filepath.Join(dir, "missing.env")))
	})
}

func TestGetAndRedaction(t *testing.T) {
	cfg := Config{
		APIKey:  "abcdefgh1234",
		Model:   "m",
		BaseURL: "http://x.test",
	}

	v, err := cfg.Get("api_key")
	require.NoError(t, err)
	assert.Equal(t, "********1234", v)
	assert.NotContains(t, v, "abcd")

	v, _ = cfg.Get("timeout")
	assert.Equal(t, "none", v)
	v, _ = cfg.Get("rate_limit")
	assert.Equal(t, "unlimited", v)
	v, _ = cfg.Get("source")
	assert.Equal(t, "environment", v)

	_, err = cfg.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)

	assert.Equal(t, "***", Config{APIKey: "abc"}.Redacted())
	assert.Len(t, cfg.Map(), len(ValidKeys()))
	assert.True(t, IsValidKey("model"))
}
