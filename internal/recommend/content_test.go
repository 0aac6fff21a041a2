// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package recommend

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/melloom/Vocalix-sub005/internal/models"
)

func poolClip(id, creatorID, topicID string, tags []string, age time.Duration, now time.Time) models.Clip {
	return models.Clip{
		ID:        id,
		CreatorID: creatorID,
		TopicID:   topicID,
		Tags:      tags,
		CreatedAt: now.Add(-age),
		Status:    models.ClipStatusLive,
	}
}

func listen(viewerID, clipID string, age time.Duration, now time.Time) models.ListenEvent {
	return models.ListenEvent{
		ID:         "listen-" + clipID,
		ViewerID:   viewerID,
		ClipID:     clipID,
		ListenedAt: now.Add(-age),
	}
}

func TestRecommendContentEmptyHistory(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	pool := []models.Clip{
		poolClip("a", "c1", "t1", nil, time.Hour, now),
	}

	if got := RecommendContent(nil, pool, now); got != nil {
		t.Errorf("RecommendContent(no history) = %v, want nil", got)
	}
}

func TestRecommendContentMatching(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	pool := []models.Clip{
		poolClip("heard", "c1", "t1", []string{"jazz"}, 48*time.Hour, now),
		poolClip("same-topic", "c9", "t1", nil, 24*time.Hour, now),
		poolClip("same-creator", "c1", "t2", nil, 24*time.Hour, now),
		poolClip("unrelated", "c5", "t9", nil, time.Hour, now),
	}
	listens := []models.ListenEvent{
		listen("v1", "heard", time.Hour, now),
	}

	recs := RecommendContent(listens, pool, now)

	got := make(map[string]float64, len(recs))
	for _, r := range recs {
		got[r.Clip.ID] = r.Score
	}

	if _, ok := got["heard"]; ok {
		t.Error("already-listened clip recommended")
	}
	if _, ok := got["unrelated"]; ok {
		t.Error("clip with no topic or creator match recommended")
	}

	recency := 1 - 24.0/168
	if score, ok := got["same-topic"]; !ok || math.Abs(score-(3+recency)) > 1e-9 {
		t.Errorf("same-topic score = %f, want %f", score, 3+recency)
	}
	if score, ok := got["same-creator"]; !ok || math.Abs(score-(2+recency)) > 1e-9 {
		t.Errorf("same-creator score = %f, want %f", score, 2+recency)
	}
}

func TestRecommendContentTagOverlap(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	pool := []models.Clip{
		poolClip("heard", "c1", "t1", []string{"jazz", "live"}, 48*time.Hour, now),
		poolClip("two-tags", "c9", "t1", []string{"jazz", "live", "solo"}, 168*time.Hour, now),
		poolClip("no-tags", "c9", "t1", nil, 168*time.Hour, now),
	}
	listens := []models.ListenEvent{
		listen("v1", "heard", time.Hour, now),
	}

	recs := RecommendContent(listens, pool, now)
	got := make(map[string]float64, len(recs))
	for _, r := range recs {
		got[r.Clip.ID] = r.Score
	}

	// Both candidates are a week old (zero recency) with a topic match;
	// the tagged one adds +2 per overlapping tag.
	if math.Abs(got["two-tags"]-7) > 1e-9 {
		t.Errorf("two-tags score = %f, want 7", got["two-tags"])
	}
	if math.Abs(got["no-tags"]-3) > 1e-9 {
		t.Errorf("no-tags score = %f, want 3", got["no-tags"])
	}
}

func TestRecommendContentExcludesNonCandidates(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	hidden := poolClip("hidden", "c1", "t1", nil, time.Hour, now)
	hidden.Status = models.ClipStatusHidden
	reply := poolClip("reply", "c1", "t1", nil, time.Hour, now)
	reply.ParentID = "heard"

	pool := []models.Clip{
		poolClip("heard", "c1", "t1", nil, 48*time.Hour, now),
		hidden,
		reply,
	}
	listens := []models.ListenEvent{
		listen("v1", "heard", time.Hour, now),
	}

	if recs := RecommendContent(listens, pool, now); len(recs) != 0 {
		t.Errorf("got %d recommendations, want 0 (hidden and reply excluded)", len(recs))
	}
}

func TestRecommendContentLimit(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	pool := []models.Clip{
		poolClip("heard", "c1", "t1", nil, 48*time.Hour, now),
	}
	for i := 0; i < 20; i++ {
		pool = append(pool, poolClip(fmt.Sprintf("cand-%d", i), "c9", "t1", nil,
			time.Duration(i+1)*time.Hour, now))
	}
	listens := []models.ListenEvent{
		listen("v1", "heard", time.Hour, now),
	}

	recs := RecommendContent(listens, pool, now)
	if len(recs) != 6 {
		t.Fatalf("len = %d, want 6", len(recs))
	}

	// Identical base scores, so recency orders the result: newest first.
	for i := 1; i < len(recs); i++ {
		if recs[i].Score > recs[i-1].Score {
			t.Errorf("result not in descending score order at %d", i)
		}
	}
	if recs[0].Clip.ID != "cand-0" {
		t.Errorf("first = %s, want cand-0", recs[0].Clip.ID)
	}
}

func TestRecommendContentHistoryBound(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	// The relevant listen is pushed beyond the 50-event history bound by
	// newer listens to unknown clips, so its topic contributes no signal.
	pool := []models.Clip{
		poolClip("old-heard", "c1", "t1", nil, 300*time.Hour, now),
		poolClip("cand", "c9", "t1", nil, time.Hour, now),
	}

	listens := []models.ListenEvent{
		listen("v1", "old-heard", 299*time.Hour, now),
	}
	for i := 0; i < 50; i++ {
		listens = append(listens, listen("v1", fmt.Sprintf("ghost-%d", i),
			time.Duration(i+1)*time.Minute, now))
	}

	if recs := RecommendContent(listens, pool, now); len(recs) != 0 {
		t.Errorf("got %d recommendations from out-of-window history, want 0", len(recs))
	}
}

func TestRecommendContentDeterminism(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	pool := []models.Clip{
		poolClip("heard", "c1", "t1", []string{"jazz"}, 48*time.Hour, now),
	}
	for i := 0; i < 15; i++ {
		pool = append(pool, poolClip(fmt.Sprintf("cand-%d", i), "c9", "t1",
			[]string{"jazz"}, 24*time.Hour, now))
	}
	listens := []models.ListenEvent{
		listen("v1", "heard", time.Hour, now),
	}

	first := RecommendContent(listens, pool, now)
	for i := 0; i < 5; i++ {
		again := RecommendContent(listens, pool, now)
		if len(again) != len(first) {
			t.Fatalf("run %d: len %d != %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j].Clip.ID != first[j].Clip.ID {
				t.Errorf("run %d item %d: %s != %s", i, j, again[j].Clip.ID, first[j].Clip.ID)
			}
		}
	}
}
