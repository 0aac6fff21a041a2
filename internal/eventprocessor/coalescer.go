// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package eventprocessor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/melloom/Vocalix-sub005/internal/metrics"
)

// RefreshFunc reloads the content snapshot and invalidates downstream
// caches. It runs at most once per debounce window regardless of how
// many change events arrived.
type RefreshFunc func(ctx context.Context) error

// Coalescer folds bursts of content change events into single refresh
// calls. Every Notify restarts the debounce timer; once the timer fires
// and the rate limiter permits, the refresh runs with the accumulated
// event count.
type Coalescer struct {
	cfg     CoalescerConfig
	refresh RefreshFunc
	limiter *rate.Limiter
	logger  zerolog.Logger

	mu      sync.Mutex
	pending int
	kick    chan struct{}
}

// NewCoalescer creates a coalescer around the given refresh function.
func NewCoalescer(cfg CoalescerConfig, refresh RefreshFunc, logger zerolog.Logger) (*Coalescer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid coalescer config: %w", err)
	}
	if refresh == nil {
		return nil, fmt.Errorf("refresh function is required")
	}

	return &Coalescer{
		cfg:     cfg,
		refresh: refresh,
		limiter: rate.NewLimiter(cfg.RefreshRate, cfg.RefreshBurst),
		logger:  logger.With().Str("component", "coalescer").Logger(),
		kick:    make(chan struct{}, 1),
	}, nil
}

// Notify records one change event and restarts the debounce window.
// Safe to call from any goroutine; never blocks.
func (c *Coalescer) Notify() {
	c.mu.Lock()
	c.pending++
	c.mu.Unlock()

	select {
	case c.kick <- struct{}{}:
	default:
	}
}

// Pending returns the number of events accumulated since the last refresh.
func (c *Coalescer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Run processes notifications until the context is cancelled. Intended
// to run as a supervised service; returns the context error on shutdown.
func (c *Coalescer) Run(ctx context.Context) error {
	timer := time.NewTimer(c.cfg.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case <-c.kick:
			// Restart the window on every event so a steady burst
			// produces exactly one refresh after it quiets down.
			if armed && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(c.cfg.Debounce)
			armed = true

		case <-timer.C:
			armed = false
			if err := c.fire(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.Error().Err(err).Msg("snapshot refresh failed")
				// Events were requeued; re-arm so the retry does not
				// wait for another notification.
				timer.Reset(c.cfg.Debounce)
				armed = true
			}
		}
	}
}

// fire runs one refresh for the accumulated events.
func (c *Coalescer) fire(ctx context.Context) error {
	c.mu.Lock()
	events := c.pending
	c.pending = 0
	c.mu.Unlock()

	if events == 0 {
		return nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		// Put the events back so a later window retries them.
		c.mu.Lock()
		c.pending += events
		c.mu.Unlock()
		return err
	}

	start := time.Now()
	if err := c.refresh(ctx); err != nil {
		c.mu.Lock()
		c.pending += events
		c.mu.Unlock()
		return err
	}

	metrics.RecordCoalescedRefresh(events)
	c.logger.Debug().
		Int("events", events).
		Dur("duration", time.Since(start)).
		Msg("coalesced refresh complete")
	return nil
}
