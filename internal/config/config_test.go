package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultURL, cfg.URL)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, 60*time.Second, cfg.Timeout())
}

func TestLoadFileFormats(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", "url: http://example.test:9000\napi_key: yk\ntimeout_seconds: 30\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://example.test:9000", cfg.URL)
		assert.Equal(t, "yk", cfg.APIKey)
		assert.Equal(t, 30*time.Second, cfg.Timeout())
		assert.Equal(t, path, cfg.Source)
	})

	t.Run("toml", func(t *testing.T) {
		path := writeConfig(t, "config.toml", "url = \"http://example.test:9001\"\napi_key = \"tk\"\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://example.test:9001", cfg.URL)
		assert.Equal(t, "tk", cfg.APIKey)
	})

	t.Run("json", func(t *testing.T) {
		path := writeConfig(t, "config.json", `{"url": "http://example.test:9002", "api_key": "jk"}`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://example.test:9002", cfg.URL)
		assert.Equal(t, "jk", cfg.APIKey)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", "api_key: only-key\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultURL, cfg.URL)
		assert.Equal(t, "only-key", cfg.APIKey)
	})
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := writeConfig(t, "config.yaml", "url: [unclosed\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", "url: http://from-file:1\napi_key: file-key\n")
	t.Setenv(EnvURL, "http://from-env:2")
	t.Setenv(EnvAPIKey, "env-key")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:2", cfg.URL)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestEnvConfigFileVariable(t *testing.T) {
	path := writeConfig(t, "config.yaml", "url: http://from-env-file:3\n")
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://from-env-file:3", cfg.URL)
}

func TestExplicitPathBeatsEnvConfigFile(t *testing.T) {
	envPath := writeConfig(t, "config.yaml", "url: http://env:1\n")
	explicitPath := writeConfig(t, "config.yaml", "url: http://explicit:2\n")
	t.Setenv(EnvConfigFile, envPath)

	cfg, err := Load(explicitPath)
	require.NoError(t, err)
	assert.Equal(t, "http://explicit:2", cfg.URL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"http ok", "http://localhost:1933", false},
		{"https ok", "https://api.example.test", false},
		{"empty", "", true},
		{"no scheme", "localhost:1933", true},
		{"wrong scheme", "ftp://host", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.URL = tc.url
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	cfg := Default()
	cfg.TimeoutSeconds = 0.5
	assert.Equal(t, 500*time.Millisecond, cfg.Timeout())

	cfg.TimeoutSeconds = 0
	assert.Equal(t, 60*time.Second, cfg.Timeout())

	cfg.TimeoutSeconds = -1
	assert.Equal(t, 60*time.Second, cfg.Timeout())
}
