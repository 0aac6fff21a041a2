// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/melloom/Vocalix-sub005/internal/models"
)

// Memory is an in-process ContentStore. Snapshots are deep copies, so a
// returned snapshot never observes later writes.
type Memory struct {
	mu      sync.RWMutex
	clips   map[string]models.Clip
	topics  map[string]models.Topic
	listens []models.ListenEvent
	follows []models.FollowEdge
	viewers map[string]models.Viewer
	closed  bool

	nowFn func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		clips:   make(map[string]models.Clip),
		topics:  make(map[string]models.Topic),
		viewers: make(map[string]models.Viewer),
		nowFn:   time.Now,
	}
}

// Snapshot returns a deep copy of the current content set with derived
// topic metrics and reply counts filled in.
func (m *Memory) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}

	clips := make([]models.Clip, 0, len(m.clips))
	for _, clip := range m.clips {
		// Copying the struct shares slice and map backing storage;
		// clone it so later writes cannot reach the snapshot.
		if clip.Tags != nil {
			clip.Tags = append([]string(nil), clip.Tags...)
		}
		if clip.Reactions != nil {
			reactions := make(map[string]any, len(clip.Reactions))
			for k, v := range clip.Reactions {
				reactions[k] = v
			}
			clip.Reactions = reactions
		}
		clips = append(clips, clip)
	}
	// Creation-time descending, newest first, with ID as the tiebreak.
	// This is the neutral pre-scoring order the stable sort preserves
	// for score ties.
	sort.Slice(clips, func(i, j int) bool {
		if !clips[i].CreatedAt.Equal(clips[j].CreatedAt) {
			return clips[i].CreatedAt.After(clips[j].CreatedAt)
		}
		return clips[i].ID < clips[j].ID
	})

	replyCounts := deriveReplyCounts(clips)
	for i := range clips {
		clips[i].ReplyCount = replyCounts[clips[i].ID]
	}

	topics := make([]models.Topic, 0, len(m.topics))
	for _, topic := range m.topics {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		if !topics[i].Date.Equal(topics[j].Date) {
			return topics[i].Date.After(topics[j].Date)
		}
		return topics[i].ID < topics[j].ID
	})

	listens := make([]models.ListenEvent, len(m.listens))
	copy(listens, m.listens)
	follows := make([]models.FollowEdge, len(m.follows))
	copy(follows, m.follows)

	return &models.Snapshot{
		Clips:   clips,
		Topics:  topics,
		Metrics: deriveTopicMetrics(clips),
		Listens: listens,
		Follows: follows,
		TakenAt: m.nowFn(),
	}, nil
}

// Viewer returns the viewer profile, or ErrNotFound.
func (m *Memory) Viewer(ctx context.Context, viewerID string) (*models.Viewer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}

	viewer, ok := m.viewers[viewerID]
	if !ok {
		return nil, ErrNotFound
	}

	out := viewer
	if len(viewer.BlockedCreators) > 0 {
		out.BlockedCreators = make(map[string]struct{}, len(viewer.BlockedCreators))
		for id := range viewer.BlockedCreators {
			out.BlockedCreators[id] = struct{}{}
		}
	}
	return &out, nil
}

// UpsertClip creates or replaces a clip.
func (m *Memory) UpsertClip(ctx context.Context, clip *models.Clip) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.clips[clip.ID] = *clip
	return nil
}

// DeleteClip removes a clip. Absent clips are a no-op.
func (m *Memory) DeleteClip(ctx context.Context, clipID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.clips, clipID)
	return nil
}

// UpsertTopic creates or replaces a topic.
func (m *Memory) UpsertTopic(ctx context.Context, topic *models.Topic) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.topics[topic.ID] = *topic
	return nil
}

// RecordListen appends a listen event and bumps the clip's listen count.
func (m *Memory) RecordListen(ctx context.Context, ev *models.ListenEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	stored := *ev
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.ListenedAt.IsZero() {
		stored.ListenedAt = m.nowFn()
	}
	m.listens = append(m.listens, stored)

	if clip, ok := m.clips[stored.ClipID]; ok {
		clip.Listens++
		m.clips[stored.ClipID] = clip
	}
	return nil
}

// UpsertViewer creates or replaces a viewer profile.
func (m *Memory) UpsertViewer(ctx context.Context, viewer *models.Viewer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.viewers[viewer.ID] = *viewer
	return nil
}

// AddFollow appends a follow edge.
func (m *Memory) AddFollow(ctx context.Context, edge *models.FollowEdge) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.follows = append(m.follows, *edge)
	return nil
}

// Close marks the store closed. Further calls return ErrClosed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
