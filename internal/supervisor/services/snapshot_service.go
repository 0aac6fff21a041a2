// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SnapshotRefresher is the subset of store.Holder the service needs.
type SnapshotRefresher interface {
	Refresh(ctx context.Context) error
}

// SnapshotServiceConfig holds configuration for the snapshot service.
type SnapshotServiceConfig struct {
	// Interval is how often to reload the snapshot regardless of change
	// events. Acts as a safety net when the event pipeline is down.
	Interval time.Duration

	// RefreshOnStartup loads a snapshot before entering the loop so the
	// API never starts cold.
	RefreshOnStartup bool
}

// SnapshotService periodically reloads the content snapshot from the
// store. Event-driven refreshes go through the coalescer; this service
// is the time-based fallback.
type SnapshotService struct {
	refresher SnapshotRefresher
	config    SnapshotServiceConfig
	logger    zerolog.Logger
	name      string
}

// NewSnapshotService creates a new snapshot refresh service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSnapshotService(refresher SnapshotRefresher, cfg SnapshotServiceConfig, logger zerolog.Logger) *SnapshotService {
	if cfg.Interval <= 0 {
		cfg.Interval = 60 * time.Second
	}
	return &SnapshotService{
		refresher: refresher,
		config:    cfg,
		logger:    logger.With().Str("service", "snapshot").Logger(),
		name:      "snapshot-service",
	}
}

// Serve implements the suture.Service interface.
func (s *SnapshotService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Bool("refresh_on_startup", s.config.RefreshOnStartup).
		Msg("snapshot service starting")

	if s.config.RefreshOnStartup {
		if err := s.refresher.Refresh(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("startup snapshot load failed (will retry on schedule)")
		}
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("snapshot service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.refresher.Refresh(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn().Err(err).Msg("scheduled snapshot load failed")
			}
		}
	}
}

// String implements fmt.Stringer for suture's log messages.
func (s *SnapshotService) String() string {
	return s.name
}
