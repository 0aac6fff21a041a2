// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package models

import (
	"time"
)

// Snapshot is an immutable view of the content set taken by the store for
// one ranking pass. The engine never mutates a snapshot; incremental change
// events trigger a full re-snapshot rather than in-place patching.
type Snapshot struct {
	// Clips holds every clip visible to the store at snapshot time,
	// including processing clips. Replies carry their parent reference.
	Clips []Clip `json:"clips"`

	// Topics holds every known topic, active or not.
	Topics []Topic `json:"topics"`

	// Metrics maps topic ID to aggregated engagement.
	Metrics map[string]TopicMetrics `json:"metrics"`

	// Listens holds listen events, most recent last.
	Listens []ListenEvent `json:"listens"`

	// Follows holds follow edges.
	Follows []FollowEdge `json:"follows"`

	// TakenAt is when the snapshot was assembled.
	TakenAt time.Time `json:"taken_at"`
}

// ClipByID returns the clip with the given ID, or nil when absent.
func (s *Snapshot) ClipByID(id string) *Clip {
	for i := range s.Clips {
		if s.Clips[i].ID == id {
			return &s.Clips[i]
		}
	}
	return nil
}

// ListensByViewer returns the viewer's listen events in snapshot order.
func (s *Snapshot) ListensByViewer(viewerID string) []ListenEvent {
	var out []ListenEvent
	for _, l := range s.Listens {
		if l.ViewerID == viewerID {
			out = append(out, l)
		}
	}
	return out
}
