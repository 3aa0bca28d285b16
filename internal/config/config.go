// Package config resolves client configuration from defaults, an optional
// config file (YAML, TOML, or JSON), and environment variables, in that
// order of precedence.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigFile names an explicit config file, overridden by --config.
	EnvConfigFile = "OPENVIKING_CLI_CONFIG_FILE"
	// EnvURL and EnvAPIKey override the corresponding file values.
	EnvURL    = "OPENVIKING_URL"
	EnvAPIKey = "OPENVIKING_API_KEY"

	DefaultURL            = "http://127.0.0.1:1933"
	DefaultTimeoutSeconds = 60
)

// Config is the effective client configuration.
type Config struct {
	URL            string  `yaml:"url" toml:"url" json:"url"`
	APIKey         string  `yaml:"api_key" toml:"api_key" json:"api_key"`
	TimeoutSeconds float64 `yaml:"timeout_seconds" toml:"timeout_seconds" json:"timeout_seconds"`

	// Source records where the file portion came from; empty when only
	// defaults and environment applied.
	Source string `yaml:"-" toml:"-" json:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		URL:            DefaultURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Timeout converts the configured timeout to a duration.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// Validate checks that the configuration can be used for API calls.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("server url is empty")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid server url %q: %w", c.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server url %q: scheme must be http or https", c.URL)
	}
	return nil
}

// Load resolves the configuration. explicitPath comes from the --config
// flag; when empty, the OPENVIKING_CLI_CONFIG_FILE environment variable is
// consulted, then the default candidates under the user config directory.
// A missing explicit file is an error; missing defaults are not.
func Load(explicitPath string) (*Config, error) {
	cfg := Default()

	path, required := resolvePath(explicitPath)
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			if !required && os.IsNotExist(err) {
				// Default candidate vanished between probe and read.
				path = ""
			} else {
				return nil, err
			}
		}
		cfg.Source = path
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolvePath(explicitPath string) (path string, required bool) {
	if explicitPath != "" {
		return explicitPath, true
	}
	if envPath := os.Getenv(EnvConfigFile); envPath != "" {
		return envPath, true
	}
	for _, candidate := range defaultCandidates() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, false
		}
	}
	return "", false
}

func defaultCandidates() []string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	base := filepath.Join(configDir, "ovx")
	return []string{
		filepath.Join(base, "config.yaml"),
		filepath.Join(base, "config.yml"),
		filepath.Join(base, "config.toml"),
		filepath.Join(base, "config.json"),
	}
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvURL); v != "" {
		cfg.URL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
}
