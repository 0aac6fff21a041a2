// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/melloom/Vocalix-sub005/internal/models"
)

func memClip(id, topicID string, createdAt time.Time, listens int64) *models.Clip {
	return &models.Clip{
		ID:            id,
		CreatorID:     "creator-" + id,
		CreatedAt:     createdAt,
		Listens:       listens,
		TopicID:       topicID,
		ContentRating: models.RatingGeneral,
		Status:        models.ClipStatusLive,
	}
}

func TestMemorySnapshotOrdering(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Insert out of order; snapshot must come back newest first.
	for _, c := range []*models.Clip{
		memClip("mid", "", base.Add(-1*time.Hour), 0),
		memClip("new", "", base, 0),
		memClip("old", "", base.Add(-2*time.Hour), 0),
	} {
		if err := m.UpsertClip(ctx, c); err != nil {
			t.Fatalf("UpsertClip(%s): %v", c.ID, err)
		}
	}

	snap, err := m.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	want := []string{"new", "mid", "old"}
	if len(snap.Clips) != len(want) {
		t.Fatalf("got %d clips, want %d", len(snap.Clips), len(want))
	}
	for i, id := range want {
		if snap.Clips[i].ID != id {
			t.Errorf("Clips[%d] = %s, want %s", i, snap.Clips[i].ID, id)
		}
	}
}

func TestMemorySnapshotTiebreakByID(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for _, id := range []string{"b", "c", "a"} {
		if err := m.UpsertClip(ctx, memClip(id, "", at, 0)); err != nil {
			t.Fatalf("UpsertClip(%s): %v", id, err)
		}
	}

	snap, err := m.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if snap.Clips[i].ID != id {
			t.Errorf("Clips[%d] = %s, want %s", i, snap.Clips[i].ID, id)
		}
	}
}

func TestMemorySnapshotIsCopy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	clip := memClip("c1", "", time.Now(), 5)
	clip.Tags = []string{"jazz"}
	clip.Reactions = map[string]any{"fire": int64(3)}
	if err := m.UpsertClip(ctx, clip); err != nil {
		t.Fatalf("UpsertClip: %v", err)
	}

	first, err := m.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	first.Clips[0].Listens = 999
	first.Clips[0].Tags[0] = "mutated"
	first.Clips[0].Reactions["fire"] = int64(999)

	second, err := m.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if second.Clips[0].Listens != 5 {
		t.Errorf("snapshot mutation leaked: Listens = %d, want 5", second.Clips[0].Listens)
	}
	if second.Clips[0].Tags[0] != "jazz" {
		t.Errorf("snapshot tag mutation leaked: %q", second.Clips[0].Tags[0])
	}
	if got := second.Clips[0].Reactions["fire"]; got != int64(3) {
		t.Errorf("snapshot reaction mutation leaked: %v, want 3", got)
	}
}

func TestMemoryTopicMetrics(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	now := time.Now()

	live1 := memClip("l1", "topic-1", now, 10)
	live2 := memClip("l2", "topic-1", now, 20)
	processing := memClip("p1", "topic-1", now, 5)
	processing.Status = models.ClipStatusProcessing
	hidden := memClip("h1", "topic-1", now, 100)
	hidden.Status = models.ClipStatusHidden
	reply := memClip("r1", "topic-1", now, 50)
	reply.ParentID = "l1"

	for _, c := range []*models.Clip{live1, live2, processing, hidden, reply} {
		if err := m.UpsertClip(ctx, c); err != nil {
			t.Fatalf("UpsertClip(%s): %v", c.ID, err)
		}
	}

	snap, err := m.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	got, ok := snap.Metrics["topic-1"]
	if !ok {
		t.Fatal("missing metrics for topic-1")
	}
	// Hidden clips and replies never count; processing clips do.
	if got.Posts != 3 {
		t.Errorf("Posts = %d, want 3", got.Posts)
	}
	if got.Listens != 35 {
		t.Errorf("Listens = %d, want 35", got.Listens)
	}
}

func TestMemoryReplyCounts(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	now := time.Now()

	parent := memClip("parent", "", now, 0)
	reply1 := memClip("reply-1", "", now, 0)
	reply1.ParentID = "parent"
	reply2 := memClip("reply-2", "", now, 0)
	reply2.ParentID = "parent"

	for _, c := range []*models.Clip{parent, reply1, reply2} {
		if err := m.UpsertClip(ctx, c); err != nil {
			t.Fatalf("UpsertClip(%s): %v", c.ID, err)
		}
	}

	snap, err := m.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	p := snap.ClipByID("parent")
	if p == nil {
		t.Fatal("parent clip missing from snapshot")
	}
	if p.ReplyCount != 2 {
		t.Errorf("ReplyCount = %d, want 2", p.ReplyCount)
	}
}

func TestMemoryDeleteClip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.UpsertClip(ctx, memClip("c1", "", time.Now(), 0)); err != nil {
		t.Fatalf("UpsertClip: %v", err)
	}
	if err := m.DeleteClip(ctx, "c1"); err != nil {
		t.Fatalf("DeleteClip: %v", err)
	}
	// Deleting an absent clip is a no-op, not an error.
	if err := m.DeleteClip(ctx, "c1"); err != nil {
		t.Fatalf("DeleteClip(absent): %v", err)
	}

	snap, err := m.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Clips) != 0 {
		t.Errorf("got %d clips after delete, want 0", len(snap.Clips))
	}
}

func TestMemoryRecordListen(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.UpsertClip(ctx, memClip("c1", "", time.Now(), 3)); err != nil {
		t.Fatalf("UpsertClip: %v", err)
	}
	if err := m.RecordListen(ctx, &models.ListenEvent{ViewerID: "v1", ClipID: "c1"}); err != nil {
		t.Fatalf("RecordListen: %v", err)
	}

	snap, err := m.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if got := snap.ClipByID("c1").Listens; got != 4 {
		t.Errorf("Listens = %d, want 4", got)
	}
	if len(snap.Listens) != 1 {
		t.Fatalf("got %d listen events, want 1", len(snap.Listens))
	}
	ev := snap.Listens[0]
	if ev.ID == "" {
		t.Error("listen event ID was not filled in")
	}
	if ev.ListenedAt.IsZero() {
		t.Error("listen event timestamp was not filled in")
	}
}

func TestMemoryViewer(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	viewer := &models.Viewer{
		ID:   "v1",
		City: "Lisbon",
		BlockedCreators: map[string]struct{}{
			"creator-x": {},
		},
	}
	if err := m.UpsertViewer(ctx, viewer); err != nil {
		t.Fatalf("UpsertViewer: %v", err)
	}

	got, err := m.Viewer(ctx, "v1")
	if err != nil {
		t.Fatalf("Viewer: %v", err)
	}
	if got.City != "Lisbon" {
		t.Errorf("City = %q, want Lisbon", got.City)
	}

	// The returned copy must not alias internal state.
	got.BlockedCreators["creator-y"] = struct{}{}
	again, err := m.Viewer(ctx, "v1")
	if err != nil {
		t.Fatalf("Viewer: %v", err)
	}
	if _, ok := again.BlockedCreators["creator-y"]; ok {
		t.Error("blocked-creators mutation leaked into the store")
	}

	if _, err := m.Viewer(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Viewer(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryClosed(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := m.Snapshot(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Snapshot after close: %v, want ErrClosed", err)
	}
	if err := m.UpsertClip(ctx, memClip("c1", "", time.Now(), 0)); !errors.Is(err, ErrClosed) {
		t.Errorf("UpsertClip after close: %v, want ErrClosed", err)
	}
	if err := m.RecordListen(ctx, &models.ListenEvent{ViewerID: "v", ClipID: "c"}); !errors.Is(err, ErrClosed) {
		t.Errorf("RecordListen after close: %v, want ErrClosed", err)
	}
}

func TestMemoryCancelledContext(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.Snapshot(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Snapshot error = %v, want context.Canceled", err)
	}
}
