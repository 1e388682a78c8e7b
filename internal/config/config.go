// Package config loads the client configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Config holds the client settings. Flags override file values, so
// every field is optional.
type Config struct {
	// ServerURL is the Tester Talk base URL, e.g. http://tester-talk:5000.
	ServerURL string `yaml:"server_url" json:"server_url"`
	// PageSize is the default number of issues per page.
	PageSize int `yaml:"page_size" json:"page_size"`
	// Timeout is the HTTP timeout, e.g. "30s".
	Timeout string `yaml:"timeout" json:"timeout"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`
	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format" json:"log_format"`
	// StateDir overrides where the session state (cookies, cached
	// profile) is kept. Default: ~/.config/testertalk.
	StateDir string `yaml:"state_dir" json:"state_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PageSize:  20,
		Timeout:   "30s",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// DefaultPath returns the standard config file location, or "" when
// the home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "testertalk", "config.yaml")
}

// LoadFromPath reads a config file (YAML or JSON) and returns the
// parsed Config merged over the defaults. A missing file at the
// default location is not an error; the defaults are returned.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath() {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses config from bytes. ext is the file extension (e.g.
// ".json", ".yaml") for format hint; empty = detect from content.
func Load(data []byte, ext string) (*Config, error) {
	cfg := Default()

	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" {
		// Detect: JSON starts with {, everything else is YAML.
		if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
			ext = ".json"
		} else {
			ext = ".yaml"
		}
	}

	switch ext {
	case ".yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	return cfg, nil
}

// ResolveStateDir returns the directory for session state, creating it
// if needed.
func (c *Config) ResolveStateDir() (string, error) {
	dir := c.StateDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve state dir: %w", err)
		}
		dir = filepath.Join(home, ".config", "testertalk")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create state dir: %w", err)
	}
	return dir, nil
}
