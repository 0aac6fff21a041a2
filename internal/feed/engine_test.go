// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package feed

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/melloom/Vocalix-sub005/internal/logging"
	"github.com/melloom/Vocalix-sub005/internal/models"
)

func testEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	engine, err := NewEngine(cfg, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

func testSnapshot(now time.Time) *models.Snapshot {
	clips := []models.Clip{
		testClip("a", 2*time.Hour, 100, map[string]any{"fire": 10}, now),
		testClip("b", 6*time.Hour, 400, map[string]any{"fire": 50, "laugh": 5}, now),
		testClip("c", 30*time.Hour, 50, nil, now),
		func() models.Clip {
			c := testClip("hidden", time.Hour, 9999, map[string]any{"fire": 999}, now)
			c.Status = models.ClipStatusHidden
			return c
		}(),
		func() models.Clip {
			c := testClip("tagged", 4*time.Hour, 80, nil, now)
			c.Tags = []string{"standup-comedy"}
			c.TopicID = "topic-1"
			return c
		}(),
	}
	return &models.Snapshot{
		Clips:   clips,
		TakenAt: now,
	}
}

func TestEngineRank(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	engine := testEngine(t, nil)
	snapshot := testSnapshot(now)

	result, err := engine.Rank(context.Background(), &RankRequest{
		Snapshot: snapshot,
		Viewer:   models.AnonymousViewer(),
		Mode:     ModeHot,
		Now:      now,
	})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	if result.Mode != ModeHot {
		t.Errorf("Mode = %s, want hot", result.Mode)
	}
	if result.Total != 4 {
		t.Errorf("Total = %d, want 4 (hidden clip filtered)", result.Total)
	}
	if result.CacheHit {
		t.Error("first pass reported a cache hit")
	}
	for _, sc := range result.Clips {
		if sc.Clip.ID == "hidden" {
			t.Error("hidden clip surfaced")
		}
	}
}

func TestEngineRankValidation(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	engine := testEngine(t, nil)
	snapshot := testSnapshot(now)

	tests := []struct {
		name    string
		req     RankRequest
		wantErr error
	}{
		{
			name:    "unknown mode",
			req:     RankRequest{Snapshot: snapshot, Mode: "freshest", Now: now},
			wantErr: ErrInvalidMode,
		},
		{
			name:    "unknown window",
			req:     RankRequest{Snapshot: snapshot, Mode: ModeTop, Window: "decade", Now: now},
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "negative page size",
			req:     RankRequest{Snapshot: snapshot, Mode: ModeHot, PageSize: -1, Now: now},
			wantErr: ErrInvalidPageSize,
		},
		{
			name:    "negative pages",
			req:     RankRequest{Snapshot: snapshot, Mode: ModeHot, Pages: -2, Now: now},
			wantErr: ErrInvalidPageCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Rank(context.Background(), &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Rank() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEngineRankMemoization(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	engine := testEngine(t, nil)
	snapshot := testSnapshot(now)

	req := &RankRequest{
		Snapshot: snapshot,
		Viewer:   models.AnonymousViewer(),
		Mode:     ModeHot,
		Now:      now,
	}

	first, err := engine.Rank(context.Background(), req)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if first.CacheHit {
		t.Error("first call hit the cache")
	}

	second, err := engine.Rank(context.Background(), req)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if !second.CacheHit {
		t.Error("second identical call missed the cache")
	}
	if len(second.Clips) != len(first.Clips) {
		t.Fatalf("cached len = %d, want %d", len(second.Clips), len(first.Clips))
	}
	for i := range first.Clips {
		if second.Clips[i].Clip.ID != first.Clips[i].Clip.ID {
			t.Errorf("item %d: %s != %s", i, second.Clips[i].Clip.ID, first.Clips[i].Clip.ID)
		}
	}

	// Growing the page window reuses the memoized full sequence.
	grown := *req
	grown.Pages = 2
	third, err := engine.Rank(context.Background(), &grown)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if !third.CacheHit {
		t.Error("grown-window call missed the cache")
	}

	// Invalidation forces a fresh scoring pass.
	engine.Invalidate()
	fourth, err := engine.Rank(context.Background(), req)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if fourth.CacheHit {
		t.Error("call after Invalidate hit the cache")
	}
}

func TestEngineRankCacheKeyIsolation(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	engine := testEngine(t, nil)
	snapshot := testSnapshot(now)

	base := RankRequest{
		Snapshot: snapshot,
		Viewer:   models.AnonymousViewer(),
		Mode:     ModeHot,
		Now:      now,
	}
	if _, err := engine.Rank(context.Background(), &base); err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	// Each variation must miss the cache: a reused ordering across these
	// would leak the wrong feed.
	variations := []func(*RankRequest){
		func(r *RankRequest) { r.Mode = ModeTop },
		func(r *RankRequest) { r.TopicID = "topic-1" },
		func(r *RankRequest) { r.Category = "comedy" },
		func(r *RankRequest) { r.Viewer.SensitiveContentAllowed = true },
		func(r *RankRequest) { r.Viewer.City = "Austin" },
		func(r *RankRequest) {
			r.Viewer.BlockedCreators = map[string]struct{}{"creator-b": {}}
		},
		func(r *RankRequest) { r.Now = now.Add(time.Minute) },
	}

	for i, mutate := range variations {
		req := base
		mutate(&req)
		result, err := engine.Rank(context.Background(), &req)
		if err != nil {
			t.Fatalf("variation %d: Rank() error = %v", i, err)
		}
		if result.CacheHit {
			t.Errorf("variation %d reused another request's ordering", i)
		}
	}
}

func TestEngineRankTopicFilter(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	engine := testEngine(t, nil)
	snapshot := testSnapshot(now)

	result, err := engine.Rank(context.Background(), &RankRequest{
		Snapshot: snapshot,
		Viewer:   models.AnonymousViewer(),
		Mode:     ModeHot,
		TopicID:  "topic-1",
		Now:      now,
	})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if result.Total != 1 || result.Clips[0].Clip.ID != "tagged" {
		t.Errorf("topic filter returned %d clips, want only tagged", result.Total)
	}
}

func TestEngineRankCategoryFilter(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	engine := testEngine(t, nil)
	snapshot := testSnapshot(now)

	result, err := engine.Rank(context.Background(), &RankRequest{
		Snapshot: snapshot,
		Viewer:   models.AnonymousViewer(),
		Mode:     ModeHot,
		Category: "comedy",
		Now:      now,
	})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if result.Total != 1 || result.Clips[0].Clip.ID != "tagged" {
		t.Errorf("category filter returned %d clips, want only tagged", result.Total)
	}

	none, err := engine.Rank(context.Background(), &RankRequest{
		Snapshot: snapshot,
		Viewer:   models.AnonymousViewer(),
		Mode:     ModeHot,
		Category: "sports",
		Now:      now,
	})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if none.Total != 0 {
		t.Errorf("unmatched category returned %d clips, want 0", none.Total)
	}
}

func TestEngineRankPagination(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	engine := testEngine(t, nil)
	snapshot := testSnapshot(now)

	result, err := engine.Rank(context.Background(), &RankRequest{
		Snapshot: snapshot,
		Viewer:   models.AnonymousViewer(),
		Mode:     ModeHot,
		PageSize: 2,
		Pages:    1,
		Now:      now,
	})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(result.Clips) != 2 {
		t.Errorf("len = %d, want 2", len(result.Clips))
	}
	if !result.HasMore {
		t.Error("HasMore = false with clips remaining")
	}
	if result.Total != 4 {
		t.Errorf("Total = %d, want 4", result.Total)
	}
}

func TestEngineRankCancelledContext(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	engine := testEngine(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Rank(ctx, &RankRequest{
		Snapshot: testSnapshot(now),
		Mode:     ModeHot,
		Now:      now,
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestEngineCurateTopics(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	engine := testEngine(t, nil)

	snapshot := &models.Snapshot{
		Topics: []models.Topic{
			testTopic("today", 2*time.Hour, true, now),
			testTopic("old", 60*time.Hour, true, now),
		},
	}

	curated := engine.CurateTopics(snapshot, now)
	if curated.Spotlight == nil || curated.Spotlight.ID != "today" {
		t.Errorf("spotlight = %v, want today", curated.Spotlight)
	}
	if len(curated.Secondary) != 1 || curated.Secondary[0].ID != "old" {
		t.Errorf("secondary = %v, want [old]", curated.Secondary)
	}
}

func TestNewEngineInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rising.MaxAgeHours = -1

	if _, err := NewEngine(cfg, logging.NewTestLogger(io.Discard)); err == nil {
		t.Error("NewEngine() accepted an invalid config")
	}
}

func TestSnapshotFingerprint(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	a := testSnapshot(now)
	b := testSnapshot(now)
	if SnapshotFingerprint(a) != SnapshotFingerprint(b) {
		t.Error("identical snapshots fingerprint differently")
	}

	b.Clips[0].Listens++
	if SnapshotFingerprint(a) == SnapshotFingerprint(b) {
		t.Error("changed snapshot fingerprints identically")
	}
}
