// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/melloom/Vocalix-sub005/internal/store"
)

// ListenDrainer is the subset of store.ListenLog the service needs.
type ListenDrainer interface {
	Drain(ctx context.Context, dst store.ContentStore) (int, error)
}

// ListenLogServiceConfig holds configuration for the drain service.
type ListenLogServiceConfig struct {
	// Interval is how often buffered listen events are flushed into the
	// content store.
	Interval time.Duration
}

// ListenLogService periodically drains the durable listen-event buffer
// into the content store. The ingest path stays fast because it only
// appends to the log; this service moves events to their final home.
type ListenLogService struct {
	drainer ListenDrainer
	dst     store.ContentStore
	config  ListenLogServiceConfig
	logger  zerolog.Logger
	name    string
}

// NewListenLogService creates a new drain service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewListenLogService(drainer ListenDrainer, dst store.ContentStore, cfg ListenLogServiceConfig, logger zerolog.Logger) *ListenLogService {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	return &ListenLogService{
		drainer: drainer,
		dst:     dst,
		config:  cfg,
		logger:  logger.With().Str("service", "listenlog").Logger(),
		name:    "listenlog-service",
	}
}

// Serve implements the suture.Service interface. A final drain runs on
// shutdown so buffered events are not stranded until the next start.
func (s *ListenLogService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.config.Interval).Msg("listen log drain service starting")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if n, err := s.drainer.Drain(drainCtx, s.dst); err != nil {
				s.logger.Warn().Err(err).Msg("final drain failed")
			} else if n > 0 {
				s.logger.Info().Int("events", n).Msg("final drain complete")
			}
			cancel()
			return ctx.Err()

		case <-ticker.C:
			if _, err := s.drainer.Drain(ctx, s.dst); err != nil {
				if ctx.Err() != nil {
					continue
				}
				s.logger.Warn().Err(err).Msg("listen log drain failed")
			}
		}
	}
}

// String implements fmt.Stringer for suture's log messages.
func (s *ListenLogService) String() string {
	return s.name
}
