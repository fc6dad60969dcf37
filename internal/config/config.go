// Package config loads focusflow settings from a YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all focusflow settings.
type Config struct {
	// DBPath is the SQLite database file. Empty means the XDG default.
	DBPath  string        `yaml:"db"`
	Server  ServerConfig  `yaml:"server"`
	Advisor AdvisorConfig `yaml:"advisor"`
}

// ServerConfig configures `focusflow serve`.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// AdvisorConfig configures the optional LLM second opinion.
type AdvisorConfig struct {
	// Threshold: results with a lower confidence get a second opinion
	// when --advise is given.
	Threshold   float64 `yaml:"threshold"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        "127.0.0.1:7420",
			CORSOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		},
		Advisor: AdvisorConfig{
			Threshold:   0.6,
			MaxTokens:   256,
			Temperature: 0.2,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/focusflow/config.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "focusflow", "config.yaml"), nil
}

// Load layers defaults, the YAML file at path and FOCUSFLOW_* environment
// variables. An empty path reads DefaultPath, which may be absent; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("FOCUSFLOW_DB"); ok && v != "" {
		c.DBPath = v
	}
	if v, ok := os.LookupEnv("FOCUSFLOW_ADDR"); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := os.LookupEnv("FOCUSFLOW_ADVISOR_THRESHOLD"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("FOCUSFLOW_ADVISOR_THRESHOLD: %w", err)
		}
		c.Advisor.Threshold = f
	}
	return nil
}

func (c *Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return fmt.Errorf("invalid server address %q: %w", c.Server.Addr, err)
	}
	if c.Advisor.Threshold < 0 || c.Advisor.Threshold > 1 {
		return fmt.Errorf("advisor threshold must be between 0 and 1, got %g", c.Advisor.Threshold)
	}
	if c.Advisor.MaxTokens <= 0 {
		return fmt.Errorf("advisor max_tokens must be positive, got %d", c.Advisor.MaxTokens)
	}
	return nil
}

// Save writes cfg as YAML to path, creating the parent directory.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
