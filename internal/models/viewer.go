// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package models

import (
	"time"
)

// Viewer carries the per-viewer capabilities and filter parameters the
// ranking pass needs. The engine reads it; only the store mutates it.
type Viewer struct {
	// ID uniquely identifies the viewer. Empty for anonymous viewers.
	ID string `json:"id,omitempty"`

	// City is the viewer's city, matched case-insensitively against clip
	// cities for the hot-mode local boost.
	City string `json:"city,omitempty"`

	// SensitiveContentAllowed gates sensitive-rated clips.
	SensitiveContentAllowed bool `json:"sensitive_content_allowed"`

	// BlockedCreators is the set of creator IDs the viewer has blocked.
	BlockedCreators map[string]struct{} `json:"-"`
}

// AnonymousViewer returns the default capabilities applied when no viewer
// identity is present: no city, sensitive content withheld, nothing blocked.
func AnonymousViewer() Viewer {
	return Viewer{SensitiveContentAllowed: false}
}

// Blocked reports whether the viewer has blocked the given creator.
// Anonymized clips (empty creator ID) are never blocked.
func (v *Viewer) Blocked(creatorID string) bool {
	if creatorID == "" {
		return false
	}
	_, ok := v.BlockedCreators[creatorID]
	return ok
}

// ListenEvent records that a viewer consumed a clip at a point in time.
// Consumed only by the recommendation engine.
type ListenEvent struct {
	// ID uniquely identifies the event.
	ID string `json:"id"`

	// ViewerID identifies the listener.
	ViewerID string `json:"viewer_id"`

	// ClipID identifies the consumed clip.
	ClipID string `json:"clip_id"`

	// ListenedAt is when the listen occurred.
	ListenedAt time.Time `json:"listened_at"`
}

// FollowEdge is a directed relation between two profile identities,
// consumed by the recommendation engine's social-proximity signal.
type FollowEdge struct {
	// FollowerID identifies the following profile.
	FollowerID string `json:"follower_id"`

	// FolloweeID identifies the followed profile.
	FolloweeID string `json:"followee_id"`

	// CreatedAt is when the follow was established.
	CreatedAt time.Time `json:"created_at"`
}
