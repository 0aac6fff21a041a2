// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	ListenLog ListenLogConfig `koanf:"listenlog"`
	Snapshot  SnapshotConfig  `koanf:"snapshot"`
	Feed      FeedConfig      `koanf:"feed"`
	NATS      NATSConfig      `koanf:"nats"`
	Coalescer CoalescerConfig `koanf:"coalescer"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the host:port the server binds to.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig configures the DuckDB content store. An empty Path
// selects the in-memory store instead.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	Threads   int    `koanf:"threads"` // 0 = runtime.NumCPU()
	MaxMemory string `koanf:"max_memory"`
}

// ListenLogConfig configures the badger-backed listen buffer. An empty
// Path keeps the buffer in memory.
type ListenLogConfig struct {
	Path          string        `koanf:"path"`
	SyncWrites    bool          `koanf:"sync_writes"`
	DrainInterval time.Duration `koanf:"drain_interval"`
}

// SnapshotConfig configures background snapshot refresh.
type SnapshotConfig struct {
	// RefreshInterval is the periodic full-refresh cadence; event-driven
	// refreshes via the coalescer run in addition to it.
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	// MaxAge marks health degraded when the held snapshot is older.
	MaxAge time.Duration `koanf:"max_age"`
}

// FeedConfig exposes the operational knobs of the ranking engine. Scoring
// weights stay at their built-in values; deployments tune caching and page
// sizing, not the formulas.
type FeedConfig struct {
	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`
	DefaultPageSize int           `koanf:"default_page_size"`
}

// NATSConfig configures content-event ingestion.
type NATSConfig struct {
	Enabled        bool   `koanf:"enabled"`
	URL            string `koanf:"url"`
	EmbeddedServer bool   `koanf:"embedded_server"`
	StoreDir       string `koanf:"store_dir"`
	DurableName    string `koanf:"durable_name"`
	QueueGroup     string `koanf:"queue_group"`
	Subscribers    int    `koanf:"subscribers"`
}

// CoalescerConfig configures refresh debouncing for content events.
type CoalescerConfig struct {
	Debounce       time.Duration `koanf:"debounce"`
	RefreshPerSec  float64       `koanf:"refresh_per_sec"`
	RefreshBurst   int           `koanf:"refresh_burst"`
	DedupCapacity  int           `koanf:"dedup_capacity"`
	DedupTTL       time.Duration `koanf:"dedup_ttl"`
}

// SecurityConfig configures viewer tokens, rate limits, and CORS.
type SecurityConfig struct {
	// TokenSecret enables viewer tokens when set (min 32 bytes). Empty
	// disables identification; all viewers are anonymous.
	TokenSecret string        `koanf:"token_secret"`
	TokenTTL    time.Duration `koanf:"token_ttl"`

	RateLimitRequests int           `koanf:"rate_limit_requests"`
	IngestLimitReqs   int           `koanf:"ingest_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json or console
	Caller bool   `koanf:"caller"`
}

// Validate checks cross-field constraints the type system cannot.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	if c.Snapshot.RefreshInterval <= 0 {
		return fmt.Errorf("snapshot.refresh_interval must be positive")
	}
	if c.ListenLog.DrainInterval <= 0 {
		return fmt.Errorf("listenlog.drain_interval must be positive")
	}
	if c.Feed.DefaultPageSize < 1 || c.Feed.DefaultPageSize > 100 {
		return fmt.Errorf("feed.default_page_size must be 1-100, got %d", c.Feed.DefaultPageSize)
	}
	if c.Coalescer.Debounce <= 0 {
		return fmt.Errorf("coalescer.debounce must be positive")
	}
	if c.Security.TokenSecret != "" && len(c.Security.TokenSecret) < 32 {
		return fmt.Errorf("security.token_secret must be at least 32 bytes when set")
	}
	if c.NATS.Enabled && c.NATS.URL == "" {
		return fmt.Errorf("nats.url is required when nats.enabled is true")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
