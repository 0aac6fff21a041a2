// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

// Package store provides content persistence for the feed engine: clips,
// topics, listen events, follow edges, and viewer profiles.
//
// Two implementations exist. Memory is the zero-dependency store used by
// tests and single-process deployments; DuckDB persists to a database file
// and derives topic metrics and reply counts in SQL. Both produce immutable
// Snapshot values; the engine never reads the store mid-pass.
package store

import (
	"context"
	"errors"

	"github.com/melloom/Vocalix-sub005/internal/models"
)

// Sentinel errors returned by store implementations.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrClosed indicates the store has been closed.
	ErrClosed = errors.New("store: closed")
)

// ContentStore is the persistence contract the feed service depends on.
// Implementations must be safe for concurrent use.
type ContentStore interface {
	// Snapshot returns an immutable snapshot of the full content set:
	// clips, topics, derived topic metrics, listen events, and follow
	// edges.
	Snapshot(ctx context.Context) (*models.Snapshot, error)

	// Viewer returns the viewer profile, or ErrNotFound.
	Viewer(ctx context.Context, viewerID string) (*models.Viewer, error)

	// UpsertClip creates or replaces a clip.
	UpsertClip(ctx context.Context, clip *models.Clip) error

	// DeleteClip removes a clip. Deleting an absent clip is a no-op.
	DeleteClip(ctx context.Context, clipID string) error

	// UpsertTopic creates or replaces a topic.
	UpsertTopic(ctx context.Context, topic *models.Topic) error

	// RecordListen appends a listen event.
	RecordListen(ctx context.Context, ev *models.ListenEvent) error

	// UpsertViewer creates or replaces a viewer profile.
	UpsertViewer(ctx context.Context, viewer *models.Viewer) error

	// Close releases the store's resources.
	Close() error
}

// deriveTopicMetrics aggregates post and listen counts per topic from the
// ranking-eligible clips (live and processing). Shared by implementations
// that hold clips in memory.
func deriveTopicMetrics(clips []models.Clip) map[string]models.TopicMetrics {
	metrics := make(map[string]models.TopicMetrics)
	for i := range clips {
		clip := &clips[i]
		if clip.TopicID == "" || clip.IsReply() {
			continue
		}
		if clip.Status != models.ClipStatusLive && clip.Status != models.ClipStatusProcessing {
			continue
		}
		m := metrics[clip.TopicID]
		m.TopicID = clip.TopicID
		m.Posts++
		m.Listens += clip.Listens
		metrics[clip.TopicID] = m
	}
	return metrics
}

// deriveReplyCounts counts replies per parent clip.
func deriveReplyCounts(clips []models.Clip) map[string]int64 {
	counts := make(map[string]int64)
	for i := range clips {
		if parent := clips[i].ParentID; parent != "" {
			counts[parent]++
		}
	}
	return counts
}
