// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package recommend

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/melloom/Vocalix-sub005/internal/models"
)

// Engine runs the two recommenders. It holds only configuration and a
// logger; every recommendation call is a pure transform over its inputs,
// so one Engine serves concurrent requests without locking.
type Engine struct {
	cfg    *Config
	logger zerolog.Logger
}

// NewEngine creates a recommendation engine. A nil config selects
// DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		cfg:    cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() *Config {
	return e.cfg
}

// ContentForViewer runs the content recommender for one viewer against a
// snapshot, resolving the viewer's listen history from the snapshot.
func (e *Engine) ContentForViewer(snapshot *models.Snapshot, viewerID string, now time.Time) []Recommendation {
	if snapshot == nil || viewerID == "" {
		return nil
	}
	recs := e.RecommendContent(snapshot.ListensByViewer(viewerID), snapshot.Clips, now)
	e.logger.Debug().
		Str("viewer_id", viewerID).
		Int("recommendations", len(recs)).
		Msg("content recommendations computed")
	return recs
}

// CreatorsForViewer runs the similar-creator recommender for one viewer
// against a snapshot.
func (e *Engine) CreatorsForViewer(snapshot *models.Snapshot, viewerID string, now time.Time) []Recommendation {
	if snapshot == nil || viewerID == "" {
		return nil
	}
	recs := e.RecommendCreators(snapshot.ListensByViewer(viewerID), snapshot.Clips, now)
	e.logger.Debug().
		Str("viewer_id", viewerID).
		Int("recommendations", len(recs)).
		Msg("creator recommendations computed")
	return recs
}

// nopLogger returns a logger that discards everything, for the
// package-level convenience functions.
func nopLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}
