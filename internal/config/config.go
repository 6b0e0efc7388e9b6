// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// the ehub chat client.
//
// Supports both TOML and JSON configuration formats, with sensible
// defaults, environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.ehub/config.toml
//   - ~/.ehub/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/ehub-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete ehub configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Backend configuration
	Backend BackendConfig `toml:"backend" json:"backend"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Transcript storage configuration
	Storage StorageConfig `toml:"storage" json:"storage"`

	// Development server configuration (ehub serve)
	Server ServerConfig `toml:"server" json:"server"`
}

// BackendConfig contains the assistant backend connection settings.
type BackendConfig struct {
	// URL is the chat endpoint the dispatcher POSTs to.
	URL string `toml:"url" json:"url"`
	// TimeoutMs bounds one dispatch in milliseconds (default 20000).
	TimeoutMs int `toml:"timeout_ms" json:"timeout_ms"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Greeting shows the welcome card with quick replies on start/reset.
	Greeting bool `toml:"greeting" json:"greeting"`
	// WordWrap is the markdown render width (0 = terminal width).
	WordWrap int `toml:"word_wrap" json:"word_wrap"`
	// Mouse enables mouse support in the TUI.
	Mouse bool `toml:"mouse" json:"mouse"`
}

// StorageConfig contains transcript persistence settings.
type StorageConfig struct {
	// Path to the transcripts database (empty = ~/.ehub/transcripts.db).
	Path string `toml:"path" json:"path"`
	// Autosave persists the transcript on exit.
	Autosave bool `toml:"autosave" json:"autosave"`
}

// ServerConfig contains settings for the development mock backend.
type ServerConfig struct {
	// Listen is the bind address for ehub serve.
	Listen string `toml:"listen" json:"listen"`
	// RateLimit is the per-IP request budget per minute.
	RateLimit int `toml:"rate_limit" json:"rate_limit"`
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		Backend: BackendConfig{
			URL:       "http://127.0.0.1:5000/chat",
			TimeoutMs: 20000,
		},
		UI: UIConfig{
			Greeting: true,
			WordWrap: 80,
		},
		Storage: StorageConfig{
			Autosave: false,
		},
		Server: ServerConfig{
			Listen:    "127.0.0.1:5000",
			RateLimit: 60,
		},
	}
}

// Timeout returns the backend timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutMs) * time.Millisecond
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the ehub configuration directory (~/.ehub).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".ehub"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// TranscriptsPath resolves the transcript database path.
func (c *Config) TranscriptsPath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "transcripts.db"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last, then validation.
func Load() (*Config, error) {
	cfg := Default()

	if path, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load TOML config: %w", err)
			}
			return finish(cfg)
		}
	}

	if path, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadJSON(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load JSON config: %w", err)
			}
			return finish(cfg)
		}
	}

	return finish(cfg)
}

// LoadFromPath loads configuration from a specific file path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, err
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	}
	return finish(cfg)
}

// finish applies env overrides and validation to a loaded config.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// Save writes the configuration to the TOML config file atomically.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}

	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, []byte(buf.String()), 0600)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies EHUB_* environment variables over the loaded
// values. Unparseable numeric values are ignored.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("EHUB_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("EHUB_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.Backend.TimeoutMs = ms
		}
	}
	if v := os.Getenv("EHUB_LISTEN"); v != "" {
		c.Server.Listen = v
	}
	if v := os.Getenv("EHUB_TRANSCRIPTS"); v != "" {
		c.Storage.Path = v
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validation bounds. Values outside these ranges are clamped, not rejected;
// a bad config should degrade, not refuse to start.
const (
	MinTimeoutMs = 1000
	MaxTimeoutMs = 120000

	MinRateLimit = 1
	MaxRateLimit = 6000
)

// ValidationError describes a single invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks the configuration, clamping recoverable values and
// returning an error only for values that cannot be used at all.
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return ValidationError{Field: "backend.url", Message: "must not be empty"}
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ValidationError{Field: "backend.url", Message: "must be an http(s) URL"}
	}

	if c.Backend.TimeoutMs < MinTimeoutMs {
		c.Backend.TimeoutMs = MinTimeoutMs
	}
	if c.Backend.TimeoutMs > MaxTimeoutMs {
		c.Backend.TimeoutMs = MaxTimeoutMs
	}

	if c.Server.RateLimit < MinRateLimit {
		c.Server.RateLimit = MinRateLimit
	}
	if c.Server.RateLimit > MaxRateLimit {
		c.Server.RateLimit = MaxRateLimit
	}

	if c.UI.WordWrap < 0 {
		c.UI.WordWrap = 0
	}

	return nil
}
