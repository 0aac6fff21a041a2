// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.NATS.Enabled {
		t.Fatal("NATS should default off")
	}
	if cfg.Database.Path != "" {
		t.Fatalf("database path = %q, want empty (in-memory)", cfg.Database.Path)
	}
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("VOCALIX_SERVER_PORT", "9090")
	t.Setenv("VOCALIX_LOGGING_LEVEL", "debug")
	t.Setenv("VOCALIX_SNAPSHOT_REFRESH_INTERVAL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Snapshot.RefreshInterval != 30*time.Second {
		t.Fatalf("refresh interval = %v, want 30s", cfg.Snapshot.RefreshInterval)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 7070\nfeed:\n  default_page_size: 10\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Fatalf("port = %d, want 7070 from file", cfg.Server.Port)
	}
	if cfg.Feed.DefaultPageSize != 10 {
		t.Fatalf("page size = %d, want 10 from file", cfg.Feed.DefaultPageSize)
	}
}

func TestEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7070\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("VOCALIX_SERVER_PORT", "9191")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Fatalf("port = %d, want env to win", cfg.Server.Port)
	}
}

func TestCORSOriginsFromEnv(t *testing.T) {
	t.Setenv("VOCALIX_SECURITY_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Security.CORSOrigins) != 2 {
		t.Fatalf("origins = %v, want 2 entries", cfg.Security.CORSOrigins)
	}
	if cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("origins[1] = %q", cfg.Security.CORSOrigins[1])
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"zero refresh interval", func(c *Config) { c.Snapshot.RefreshInterval = 0 }},
		{"zero drain interval", func(c *Config) { c.ListenLog.DrainInterval = 0 }},
		{"page size too large", func(c *Config) { c.Feed.DefaultPageSize = 500 }},
		{"zero debounce", func(c *Config) { c.Coalescer.Debounce = 0 }},
		{"short token secret", func(c *Config) { c.Security.TokenSecret = "short" }},
		{"nats without url", func(c *Config) { c.NATS.Enabled = true; c.NATS.URL = "" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"VOCALIX_SERVER_PORT", "server.port"},
		{"VOCALIX_DATABASE_MAX_MEMORY", "database.max_memory"},
		{"VOCALIX_SECURITY_RATE_LIMIT_REQUESTS", "security.rate_limit_requests"},
		{"VOCALIX_NATS_ENABLED", "nats.enabled"},
	}
	for _, tt := range tests {
		if got := envTransform(tt.in); got != tt.want {
			t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
