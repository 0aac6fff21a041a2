// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package models

import (
	"time"
)

// ClipStatus represents the lifecycle state of a clip.
type ClipStatus string

// Clip lifecycle states. Only live and processing clips are ranking
// candidates; hidden and removed clips are filtered out for every viewer.
const (
	ClipStatusDraft      ClipStatus = "draft"
	ClipStatusProcessing ClipStatus = "processing"
	ClipStatusLive       ClipStatus = "live"
	ClipStatusHidden     ClipStatus = "hidden"
	ClipStatusRemoved    ClipStatus = "removed"
)

// ContentRating classifies a clip's audience suitability.
type ContentRating string

// Content rating values.
const (
	RatingGeneral   ContentRating = "general"
	RatingSensitive ContentRating = "sensitive"
)

// ModerationVerdict is the risk/decision annotation attached to a clip by an
// external moderation process. The engine never produces verdicts; it only
// reads them during visibility filtering and scoring.
//
// Decision is the authoritative field. Some upstream producers populate
// Status instead; consumers fall back to Status when Decision is empty and
// treat a clip with neither as not blocked.
type ModerationVerdict struct {
	// Risk is the moderation risk score on a 0.0-1.0 scale.
	Risk float64 `json:"risk"`

	// Decision is the moderation outcome (e.g. "approved", "blocked", "reject").
	Decision string `json:"decision,omitempty"`

	// Status is a legacy alias for Decision used by older producers.
	Status string `json:"status,omitempty"`

	// Flagged marks the clip for risk-threshold exclusion.
	Flagged bool `json:"flagged,omitempty"`
}

// EffectiveDecision returns Decision, falling back to Status when Decision
// is empty. Returns empty string when the verdict carries neither.
func (v *ModerationVerdict) EffectiveDecision() string {
	if v == nil {
		return ""
	}
	if v.Decision != "" {
		return v.Decision
	}
	return v.Status
}

// Clip is a unit of user-generated audio content, the primary ranked entity.
//
// All fields are treated as an immutable snapshot for the duration of one
// ranking pass. Engagement fields may arrive malformed from upstream (e.g.
// non-numeric reaction values); ranking code substitutes documented defaults
// rather than rejecting the record.
type Clip struct {
	// ID uniquely identifies the clip.
	ID string `json:"id"`

	// CreatorID identifies the clip's creator. Empty for anonymized clips;
	// blocked-creator filtering applies only to non-empty values.
	CreatorID string `json:"creator_id,omitempty"`

	// CreatedAt is the clip's creation timestamp.
	CreatedAt time.Time `json:"created_at"`

	// Listens is the total listen count. Never negative.
	Listens int64 `json:"listens"`

	// Reactions maps emoji to reaction counts. Values are declared as any
	// because upstream producers occasionally emit non-numeric values;
	// scoring coerces those to zero.
	Reactions map[string]any `json:"reactions,omitempty"`

	// CompletionRate is the average fraction of the clip listeners finish,
	// 0.0-1.0. Nil means unknown and is scored as 0.5.
	CompletionRate *float64 `json:"completion_rate,omitempty"`

	// TopicID references the topic this clip responds to, if any.
	TopicID string `json:"topic_id,omitempty"`

	// Tags is the clip's free-text tag set.
	Tags []string `json:"tags,omitempty"`

	// ContentRating is general or sensitive. Empty is treated as general.
	ContentRating ContentRating `json:"content_rating,omitempty"`

	// Moderation is the optional moderation verdict.
	Moderation *ModerationVerdict `json:"moderation,omitempty"`

	// ParentID marks the clip as a reply to another clip. Replies never
	// rank in the primary feed; they aggregate into ReplyCount on the
	// parent.
	ParentID string `json:"parent_id,omitempty"`

	// RemixOfID references the clip this one remixes, if any.
	RemixOfID string `json:"remix_of_id,omitempty"`

	// ChainID groups clips belonging to the same chain, if any.
	ChainID string `json:"chain_id,omitempty"`

	// Status is the clip's lifecycle state.
	Status ClipStatus `json:"status"`

	// City is the creator's city at publish time, used by the hot-mode
	// local boost.
	City string `json:"city,omitempty"`

	// TrendingScore is a precomputed server-side trending signal consumed
	// verbatim by trending mode. Zero when absent.
	TrendingScore float64 `json:"trending_score,omitempty"`

	// ReplyCount is the number of replies aggregated onto this clip.
	ReplyCount int64 `json:"reply_count,omitempty"`
}

// IsReply reports whether the clip is a reply to another clip.
func (c *Clip) IsReply() bool {
	return c.ParentID != ""
}

// IsSensitive reports whether the clip carries a sensitive content rating.
func (c *Clip) IsSensitive() bool {
	return c.ContentRating == RatingSensitive
}
