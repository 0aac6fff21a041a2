// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

// Package feed implements the feed ranking and curation engine: visibility
// filtering, five-mode scoring, topic curation, pagination, and the
// orchestrating Engine with memoized ranking results.
//
// Every entry point is a pure transform over an immutable input snapshot:
// given the same inputs and the same reference time, the output order is
// identical on every call. Time-dependent scoring never reads a global
// clock; callers pass "now" explicitly.
package feed

import (
	"errors"
	"fmt"
	"time"

	"github.com/melloom/Vocalix-sub005/internal/models"
)

// Sentinel errors for caller-contract violations. Malformed data in the
// content itself is never an error; it is absorbed via documented defaults.
var (
	// ErrInvalidMode indicates an unrecognized ranking mode string.
	ErrInvalidMode = errors.New("invalid feed mode")

	// ErrInvalidWindow indicates an unrecognized time window string.
	ErrInvalidWindow = errors.New("invalid time window")

	// ErrInvalidPageSize indicates a negative page size.
	ErrInvalidPageSize = errors.New("page size must not be negative")

	// ErrInvalidPageCount indicates a negative page count.
	ErrInvalidPageCount = errors.New("page count must not be negative")
)

// Mode selects the scoring formula applied to the candidate set.
type Mode string

// The five ranking modes.
const (
	// ModeHot emphasizes recency with graceful decay.
	ModeHot Mode = "hot"
	// ModeTop ranks by pure engagement within an optional time window.
	ModeTop Mode = "top"
	// ModeControversial rewards high engagement combined with disagreement.
	ModeControversial Mode = "controversial"
	// ModeRising surfaces recent clips with strong velocity.
	ModeRising Mode = "rising"
	// ModeTrending exposes the precomputed server-side trending score.
	ModeTrending Mode = "trending"
)

// ParseMode converts a mode string to a Mode, rejecting unknown values.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeHot, ModeTop, ModeControversial, ModeRising, ModeTrending:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Valid reports whether the mode is one of the five known modes.
func (m Mode) Valid() bool {
	_, err := ParseMode(string(m))
	return err == nil
}

// TimeWindow bounds top-mode ranking to a recency window. Clips created
// before now-window are excluded from the ranking, not ranked last.
type TimeWindow string

// Top-mode time windows.
const (
	WindowAll   TimeWindow = "all"
	WindowWeek  TimeWindow = "week"
	WindowMonth TimeWindow = "month"
)

// ParseWindow converts a window string to a TimeWindow. Empty means all.
func ParseWindow(s string) (TimeWindow, error) {
	switch TimeWindow(s) {
	case WindowAll, WindowWeek, WindowMonth:
		return TimeWindow(s), nil
	case "":
		return WindowAll, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidWindow, s)
	}
}

// Duration returns the window length, or 0 for the unbounded window.
func (w TimeWindow) Duration() time.Duration {
	switch w {
	case WindowWeek:
		return 7 * 24 * time.Hour
	case WindowMonth:
		return 30 * 24 * time.Hour
	default:
		return 0
	}
}

// ModeParams carries the mode-specific scoring inputs.
type ModeParams struct {
	// Window bounds top mode. Ignored by the other modes.
	Window TimeWindow

	// Metrics maps topic ID to aggregated engagement, consumed by the
	// hot-mode topic boost. A missing entry means no boost.
	Metrics map[string]models.TopicMetrics

	// ViewerCity enables the hot-mode local boost when it matches a
	// clip's city case-insensitively. Empty disables the boost.
	ViewerCity string
}

// ScoredClip pairs a clip with the score it earned under one mode.
type ScoredClip struct {
	Clip  models.Clip `json:"clip"`
	Score float64     `json:"score"`
}

// Page is one forward-growing window over a ranked sequence.
type Page[T any] struct {
	// Items is the prefix of the ordered sequence covered so far.
	Items []T `json:"items"`

	// HasMore reports whether items remain beyond this window.
	HasMore bool `json:"has_more"`

	// Total is the length of the full ordered sequence.
	Total int `json:"total"`
}

// RankRequest describes one ranking pass.
type RankRequest struct {
	// Snapshot is the immutable content set to rank.
	Snapshot *models.Snapshot

	// Viewer carries the capability and filter parameters.
	Viewer models.Viewer

	// Mode selects the scoring formula.
	Mode Mode

	// Window bounds top mode.
	Window TimeWindow

	// TopicID restricts candidates to one topic when non-empty.
	TopicID string

	// Category restricts candidates to one classifier category when
	// non-empty.
	Category string

	// PageSize is the page length. Zero means the configured default;
	// negative is rejected.
	PageSize int

	// Pages is the number of pages consumed so far, including the one
	// being requested. Zero means one.
	Pages int

	// Now is the reference time. Zero means the engine's clock.
	Now time.Time
}

// RankResult is the outcome of one ranking pass.
type RankResult struct {
	// Mode echoes the requested mode.
	Mode Mode `json:"mode"`

	// Clips is the requested window of the ranked sequence.
	Clips []ScoredClip `json:"clips"`

	// HasMore reports whether clips remain beyond the window.
	HasMore bool `json:"has_more"`

	// Total is the size of the full ranked sequence.
	Total int `json:"total"`

	// CacheHit reports whether the result came from the memoization cache.
	CacheHit bool `json:"cache_hit"`

	// LatencyMS is the ranking latency in milliseconds (0 on cache hits).
	LatencyMS int64 `json:"latency_ms"`
}
