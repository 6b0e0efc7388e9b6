// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Backend.URL != "http://127.0.0.1:5000/chat" {
		t.Errorf("Backend.URL = %q, want local chat endpoint", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutMs != 20000 {
		t.Errorf("Backend.TimeoutMs = %d, want 20000", cfg.Backend.TimeoutMs)
	}
	if !cfg.UI.Greeting {
		t.Error("UI.Greeting should default to true")
	}
	if cfg.Server.Listen != "127.0.0.1:5000" {
		t.Errorf("Server.Listen = %q", cfg.Server.Listen)
	}
}

func TestTimeout(t *testing.T) {
	cfg := Default()
	cfg.Backend.TimeoutMs = 1500
	if got := cfg.Timeout(); got != 1500*time.Millisecond {
		t.Errorf("Timeout() = %v, want 1.5s", got)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
version = "1"

[backend]
url = "http://example.com:8080/chat"
timeout_ms = 5000

[ui]
greeting = false
word_wrap = 100
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		t.Fatalf("LoadTOML() error: %v", err)
	}

	if cfg.Backend.URL != "http://example.com:8080/chat" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutMs != 5000 {
		t.Errorf("Backend.TimeoutMs = %d, want 5000", cfg.Backend.TimeoutMs)
	}
	if cfg.UI.Greeting {
		t.Error("UI.Greeting should be false after load")
	}
	// Untouched sections keep defaults.
	if cfg.Server.Listen != "127.0.0.1:5000" {
		t.Errorf("Server.Listen = %q, want default", cfg.Server.Listen)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"backend":{"url":"https://bot.example.org/chat","timeout_ms":30000}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg := Default()
	if err := LoadJSON(cfg, path); err != nil {
		t.Fatalf("LoadJSON() error: %v", err)
	}
	if cfg.Backend.URL != "https://bot.example.org/chat" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutMs != 30000 {
		t.Errorf("Backend.TimeoutMs = %d, want 30000", cfg.Backend.TimeoutMs)
	}
}

func TestLoadFromPathBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("EHUB_BACKEND_URL", "http://10.0.0.2:9000/chat")
	t.Setenv("EHUB_TIMEOUT_MS", "7000")
	t.Setenv("EHUB_LISTEN", "0.0.0.0:5001")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.URL != "http://10.0.0.2:9000/chat" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutMs != 7000 {
		t.Errorf("Backend.TimeoutMs = %d", cfg.Backend.TimeoutMs)
	}
	if cfg.Server.Listen != "0.0.0.0:5001" {
		t.Errorf("Server.Listen = %q", cfg.Server.Listen)
	}
}

func TestApplyEnvOverridesBadNumber(t *testing.T) {
	t.Setenv("EHUB_TIMEOUT_MS", "twenty")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if cfg.Backend.TimeoutMs != 20000 {
		t.Errorf("unparseable override should be ignored, got %d", cfg.Backend.TimeoutMs)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name:   "defaults pass",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty url rejected",
			mutate:  func(c *Config) { c.Backend.URL = "" },
			wantErr: true,
		},
		{
			name:    "non-http url rejected",
			mutate:  func(c *Config) { c.Backend.URL = "ftp://example.com/chat" },
			wantErr: true,
		},
		{
			name:   "low timeout clamped",
			mutate: func(c *Config) { c.Backend.TimeoutMs = 10 },
			check: func(t *testing.T, c *Config) {
				if c.Backend.TimeoutMs != MinTimeoutMs {
					t.Errorf("TimeoutMs = %d, want clamped to %d", c.Backend.TimeoutMs, MinTimeoutMs)
				}
			},
		},
		{
			name:   "high timeout clamped",
			mutate: func(c *Config) { c.Backend.TimeoutMs = 10000000 },
			check: func(t *testing.T, c *Config) {
				if c.Backend.TimeoutMs != MaxTimeoutMs {
					t.Errorf("TimeoutMs = %d, want clamped to %d", c.Backend.TimeoutMs, MaxTimeoutMs)
				}
			},
		},
		{
			name:   "negative word wrap clamped",
			mutate: func(c *Config) { c.UI.WordWrap = -5 },
			check: func(t *testing.T, c *Config) {
				if c.UI.WordWrap != 0 {
					t.Errorf("WordWrap = %d, want 0", c.UI.WordWrap)
				}
			},
		},
		{
			name:   "rate limit clamped",
			mutate: func(c *Config) { c.Server.RateLimit = 0 },
			check: func(t *testing.T, c *Config) {
				if c.Server.RateLimit != MinRateLimit {
					t.Errorf("RateLimit = %d, want %d", c.Server.RateLimit, MinRateLimit)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestTranscriptsPathOverride(t *testing.T) {
	cfg := Default()
	cfg.Storage.Path = "/tmp/custom.db"
	path, err := cfg.TranscriptsPath()
	if err != nil {
		t.Fatalf("TranscriptsPath() error: %v", err)
	}
	if path != "/tmp/custom.db" {
		t.Errorf("path = %q, want explicit override", path)
	}
}
