// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package eventprocessor

import (
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// NATSConfig holds top-level NATS event processing configuration.
type NATSConfig struct {
	// Enabled controls whether event processing is active.
	Enabled bool `json:"enabled"`

	// URL is the NATS server connection URL.
	URL string `json:"url"`

	// EmbeddedServer runs an in-process NATS server instead of
	// connecting to an external one.
	EmbeddedServer bool `json:"embedded_server"`

	// StoreDir is the JetStream storage directory.
	StoreDir string `json:"store_dir"`

	// MaxMemory is the JetStream memory limit in bytes.
	MaxMemory int64 `json:"max_memory"`

	// MaxStore is the JetStream disk limit in bytes.
	MaxStore int64 `json:"max_store"`

	// SubscribersCount is the number of concurrent message processors.
	// Keep at 1 when strict event ordering matters; event IDs make
	// redelivery safe either way.
	SubscribersCount int `json:"subscribers_count"`

	// DurableName is the JetStream consumer durable name.
	DurableName string `json:"durable_name"`

	// QueueGroup balances consumption across instances.
	QueueGroup string `json:"queue_group"`
}

// DefaultNATSConfig returns production defaults.
func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		Enabled:          false,
		URL:              "nats://127.0.0.1:4222",
		EmbeddedServer:   true,
		StoreDir:         "/data/nats/jetstream",
		MaxMemory:        1 << 30,
		MaxStore:         10 << 30,
		SubscribersCount: 1,
		DurableName:      "content-processor",
		QueueGroup:       "processors",
	}
}

// ServerConfig holds embedded NATS server configuration.
type ServerConfig struct {
	Host              string
	Port              int
	StoreDir          string
	JetStreamMaxMem   int64
	JetStreamMaxStore int64
}

// DefaultServerConfig returns production defaults for the embedded server.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:              "127.0.0.1",
		Port:              4222,
		StoreDir:          "/data/nats/jetstream",
		JetStreamMaxMem:   1 << 30,
		JetStreamMaxStore: 10 << 30,
	}
}

// PublisherConfig holds publisher configuration.
type PublisherConfig struct {
	URL              string
	MaxReconnects    int
	ReconnectWait    time.Duration
	ReconnectBuffer  int
	EnableTrackMsgID bool //nolint:revive // ID is correct per Go conventions
}

// DefaultPublisherConfig returns production defaults for the publisher.
func DefaultPublisherConfig(url string) PublisherConfig {
	return PublisherConfig{
		URL:              url,
		MaxReconnects:    -1,
		ReconnectWait:    2 * time.Second,
		ReconnectBuffer:  8 * 1024 * 1024,
		EnableTrackMsgID: true,
	}
}

// SubscriberConfig holds subscriber configuration.
type SubscriberConfig struct {
	URL              string
	DurableName      string
	QueueGroup       string
	SubscribersCount int
	AckWaitTimeout   time.Duration
	MaxDeliver       int
	MaxAckPending    int
	CloseTimeout     time.Duration
	MaxReconnects    int
	ReconnectWait    time.Duration

	// StreamName binds the subscriber to an existing stream. Required
	// for wildcard topics such as "clips.>" because stream names cannot
	// contain wildcards.
	StreamName string
}

// DefaultSubscriberConfig returns production defaults for the subscriber.
func DefaultSubscriberConfig(url string) SubscriberConfig {
	return SubscriberConfig{
		URL:              url,
		DurableName:      "content-processor",
		QueueGroup:       "processors",
		SubscribersCount: 1,
		AckWaitTimeout:   30 * time.Second,
		MaxDeliver:       5,
		MaxAckPending:    1000,
		CloseTimeout:     30 * time.Second,
		MaxReconnects:    -1,
		ReconnectWait:    2 * time.Second,
	}
}

// StreamConfig defines the content event stream.
type StreamConfig struct {
	Name            string
	Subjects        []string
	MaxAge          time.Duration
	MaxBytes        int64
	MaxMsgs         int64
	DuplicateWindow time.Duration
	Replicas        int
}

// DefaultStreamConfig returns production stream configuration.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		Name: "CONTENT_EVENTS",
		Subjects: []string{
			"clips.>",
			"topics.>",
			"listens.>",
		},
		MaxAge:          7 * 24 * time.Hour,
		MaxBytes:        10 * 1024 * 1024 * 1024,
		MaxMsgs:         -1,
		DuplicateWindow: 2 * time.Minute,
		Replicas:        1,
	}
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	Name             string
	MaxRequests      uint32        // Allowed in half-open state
	Interval         time.Duration // Reset interval for counts
	Timeout          time.Duration // Time to stay open
	FailureThreshold uint32        // Consecutive failures before opening
}

// DefaultCircuitBreakerConfig returns production defaults.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          10 * time.Second,
		FailureThreshold: 5,
	}
}

// CoalescerConfig holds refresh coalescing settings.
type CoalescerConfig struct {
	// Debounce is how long the coalescer waits after the last event
	// before firing a refresh. Bursts of changes inside the window
	// collapse into one refresh.
	Debounce time.Duration

	// RefreshRate caps refreshes per second across bursts.
	RefreshRate rate.Limit

	// RefreshBurst is the limiter burst size.
	RefreshBurst int
}

// DefaultCoalescerConfig returns production defaults for the coalescer.
func DefaultCoalescerConfig() CoalescerConfig {
	return CoalescerConfig{
		Debounce:     300 * time.Millisecond,
		RefreshRate:  rate.Limit(2),
		RefreshBurst: 1,
	}
}

// Validate checks the coalescer configuration.
func (c *CoalescerConfig) Validate() error {
	if c.Debounce <= 0 {
		return errors.New("debounce must be positive")
	}
	if c.RefreshRate <= 0 {
		return errors.New("refresh rate must be positive")
	}
	if c.RefreshBurst < 1 {
		return errors.New("refresh burst must be at least 1")
	}
	return nil
}

// ProcessorConfig holds processor settings.
type ProcessorConfig struct {
	// DedupCapacity bounds the seen-event-ID cache.
	DedupCapacity int

	// DedupTTL bounds how long an event ID is remembered.
	DedupTTL time.Duration
}

// DefaultProcessorConfig returns production defaults for the processor.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		DedupCapacity: 10000,
		DedupTTL:      10 * time.Minute,
	}
}

// Validate checks the processor configuration.
func (c *ProcessorConfig) Validate() error {
	if c.DedupCapacity < 1 {
		return errors.New("dedup capacity must be at least 1")
	}
	if c.DedupTTL <= 0 {
		return errors.New("dedup TTL must be positive")
	}
	return nil
}
