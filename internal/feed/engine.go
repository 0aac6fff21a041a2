// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package feed

import (
	"context"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"

	"github.com/melloom/Vocalix-sub005/internal/cache"
	"github.com/melloom/Vocalix-sub005/internal/models"
)

// Engine orchestrates the pure ranking functions for one service process:
// visibility filtering, mode scoring, pagination, and topic curation, with
// memoized ranked sequences. The underlying transforms stay pure; all
// mutable state lives in the memoization cache, which the event processor
// invalidates after each coalesced snapshot refresh.
//
// Engine is safe for concurrent use.
type Engine struct {
	cfg        *Config
	scorer     *Scorer
	curator    *Curator
	classifier Classifier
	logger     zerolog.Logger

	// ranked memoizes full ranked sequences; pages are cut per request.
	ranked *cache.LRU[[]ScoredClip]

	cacheHits   atomic.Int64
	cacheMisses atomic.Int64

	// nowFn supplies the reference time for requests that omit one.
	nowFn func() time.Time
}

// NewEngine creates a feed engine. A nil config selects DefaultConfig.
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
		cfg:        cfg,
		scorer:     NewScorer(cfg),
		curator:    NewCurator(cfg),
		classifier: DefaultKeywordClassifier(),
		logger:     logger.With().Str("component", "feed").Logger(),
		ranked:     cache.NewLRU[[]ScoredClip](cfg.Cache.MaxEntries, cfg.Cache.TTL),
		nowFn:      time.Now,
	}, nil
}

// SetClassifier replaces the category classifier. Intended for wiring a
// trained classifier in place of the keyword default.
func (e *Engine) SetClassifier(c Classifier) {
	if c != nil {
		e.classifier = c
	}
}

// SetClock replaces the engine's clock. Intended for tests.
func (e *Engine) SetClock(now func() time.Time) {
	if now != nil {
		e.nowFn = now
	}
}

// Config returns the engine's configuration.
func (e *Engine) Config() *Config {
	return e.cfg
}

// Rank runs one ranking pass: visibility filter, optional topic and
// category restriction, mode scoring, then pagination. The fully ranked
// sequence is memoized so successive pages of the same feed reuse one
// scoring pass.
func (e *Engine) Rank(ctx context.Context, req *RankRequest) (*RankResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !req.Mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, req.Mode)
	}
	window, err := ParseWindow(string(req.Window))
	if err != nil {
		return nil, err
	}
	if req.PageSize < 0 {
		return nil, ErrInvalidPageSize
	}
	if req.Pages < 0 {
		return nil, ErrInvalidPageCount
	}
	if req.Snapshot == nil {
		return nil, fmt.Errorf("rank: nil snapshot")
	}

	now := req.Now
	if now.IsZero() {
		now = e.nowFn()
	}

	pageSize := req.PageSize
	if pageSize == 0 {
		pageSize = e.cfg.Pagination.DefaultPageSize
	}

	start := time.Now()

	key := e.cacheKey(req, window, now)
	ordered, hit := e.lookupRanked(key)
	if !hit {
		ordered, err = e.rankAll(req, window, now)
		if err != nil {
			return nil, err
		}
		if e.cfg.Cache.Enabled {
			e.ranked.Add(key, ordered)
		}
	}

	page, err := Paginate(ordered, pageSize, req.Pages)
	if err != nil {
		return nil, err
	}

	result := &RankResult{
		Mode:     req.Mode,
		Clips:    page.Items,
		HasMore:  page.HasMore,
		Total:    page.Total,
		CacheHit: hit,
	}
	if !hit {
		result.LatencyMS = time.Since(start).Milliseconds()
	}

	e.logger.Debug().
		Str("mode", string(req.Mode)).
		Int("total", result.Total).
		Int("returned", len(result.Clips)).
		Bool("cache_hit", hit).
		Msg("ranking pass complete")

	return result, nil
}

// rankAll produces the full ranked sequence for a request.
func (e *Engine) rankAll(req *RankRequest, window TimeWindow, now time.Time) ([]ScoredClip, error) {
	visible := filterVisible(req.Snapshot.Clips, &req.Viewer, e.cfg.Visibility.RiskThreshold)

	if req.TopicID != "" || req.Category != "" {
		filtered := visible[:0:0]
		for _, clip := range visible {
			if req.TopicID != "" && clip.TopicID != req.TopicID {
				continue
			}
			if req.Category != "" {
				category, ok := e.classifier.Classify(&clip)
				if !ok || category != req.Category {
					continue
				}
			}
			filtered = append(filtered, clip)
		}
		visible = filtered
	}

	params := ModeParams{
		Window:     window,
		Metrics:    req.Snapshot.Metrics,
		ViewerCity: req.Viewer.City,
	}
	return e.scorer.ScoreAndSort(visible, req.Mode, params, now)
}

// CurateTopics curates today's topics from the snapshot.
func (e *Engine) CurateTopics(snapshot *models.Snapshot, now time.Time) models.CuratedTopics {
	if now.IsZero() {
		now = e.nowFn()
	}
	return e.curator.CurateTopics(snapshot.Topics, snapshot.Metrics, now)
}

// Invalidate drops every memoized ranked sequence. Called after a snapshot
// refresh so stale orderings are never served past the refresh.
func (e *Engine) Invalidate() {
	e.ranked.Clear()
	e.logger.Debug().Msg("ranking cache invalidated")
}

// CacheStats returns memoization hit/miss counters and the entry count.
func (e *Engine) CacheStats() (hits, misses int64, entries int) {
	_, _, entries = e.ranked.Stats()
	return e.cacheHits.Load(), e.cacheMisses.Load(), entries
}

// lookupRanked consults the memoization cache.
func (e *Engine) lookupRanked(key string) ([]ScoredClip, bool) {
	if !e.cfg.Cache.Enabled {
		return nil, false
	}
	ordered, ok := e.ranked.Get(key)
	if ok {
		e.cacheHits.Add(1)
	} else {
		e.cacheMisses.Add(1)
	}
	return ordered, ok
}

// cacheKey builds the memoization key: mode, window, topic and category
// focus, every viewer parameter that affects filtering or scoring, the
// time bucket, and the content-set fingerprint. Any of these changing
// produces a different key, so stale orderings are never reused across
// filter changes.
func (e *Engine) cacheKey(req *RankRequest, window TimeWindow, now time.Time) string {
	bucket := now.Truncate(e.cfg.Cache.TimeBucket).Unix()

	blocked := make([]string, 0, len(req.Viewer.BlockedCreators))
	for id := range req.Viewer.BlockedCreators {
		blocked = append(blocked, id)
	}
	sort.Strings(blocked)

	var b strings.Builder
	b.WriteString(string(req.Mode))
	b.WriteByte('|')
	b.WriteString(string(window))
	b.WriteByte('|')
	b.WriteString(req.TopicID)
	b.WriteByte('|')
	b.WriteString(req.Category)
	b.WriteByte('|')
	b.WriteString(strings.ToLower(req.Viewer.City))
	b.WriteByte('|')
	b.WriteString(strconv.FormatBool(req.Viewer.SensitiveContentAllowed))
	b.WriteByte('|')
	b.WriteString(strings.Join(blocked, ","))
	b.WriteByte('|')
	b.WriteString(strconv.FormatInt(bucket, 10))
	b.WriteByte('|')
	b.WriteString(SnapshotFingerprint(req.Snapshot))
	return b.String()
}

// SnapshotFingerprint computes a BLAKE2b digest over the snapshot's clip
// IDs and statuses. Two snapshots with the same content set fingerprint
// identically, so memoized rankings survive no-op refreshes.
func SnapshotFingerprint(snapshot *models.Snapshot) string {
	h, err := blake2b.New256(nil)
	if err != nil {
		// Only reachable with a bad key; New256(nil) never fails.
		return ""
	}
	for i := range snapshot.Clips {
		clip := &snapshot.Clips[i]
		h.Write([]byte(clip.ID))
		h.Write([]byte{0})
		h.Write([]byte(clip.Status))
		h.Write([]byte{0})
		h.Write([]byte(strconv.FormatInt(clip.Listens, 10)))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
