// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

// Package recommend derives "you might like" clip lists and "similar
// voices" creator-based clip lists from a viewer's listening history.
//
// Both recommenders are pure transforms over an immutable input snapshot:
// no I/O, no internal mutable state, and a deterministic output for a given
// history, candidate pool, and reference time. An empty intermediate set at
// any step (no history, no favorites, no matching candidates) degrades to
// an empty result, never an error.
package recommend

import (
	"sort"
	"time"

	"github.com/melloom/Vocalix-sub005/internal/models"
)

// Recommendation pairs a recommended clip with its relevance score.
type Recommendation struct {
	Clip  models.Clip `json:"clip"`
	Score float64     `json:"score"`
}

// tasteProfile summarizes what a set of listened clips says about a
// viewer's interests.
type tasteProfile struct {
	topics   map[string]struct{}
	tags     map[string]struct{}
	creators map[string]struct{}
	listened map[string]struct{}
}

// recentListens returns the viewer's listen events sorted newest first,
// truncated to limit.
func recentListens(listens []models.ListenEvent, limit int) []models.ListenEvent {
	if len(listens) == 0 {
		return nil
	}

	sorted := make([]models.ListenEvent, len(listens))
	copy(sorted, listens)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ListenedAt.After(sorted[j].ListenedAt)
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// buildProfile resolves listened clips into a taste profile. Listen events
// referencing clips absent from the pool still mark the clip as listened
// but contribute no interest signal.
func buildProfile(listens []models.ListenEvent, byID map[string]*models.Clip) *tasteProfile {
	p := &tasteProfile{
		topics:   make(map[string]struct{}),
		tags:     make(map[string]struct{}),
		creators: make(map[string]struct{}),
		listened: make(map[string]struct{}),
	}

	for _, ev := range listens {
		p.listened[ev.ClipID] = struct{}{}
		clip, ok := byID[ev.ClipID]
		if !ok {
			continue
		}
		if clip.TopicID != "" {
			p.topics[clip.TopicID] = struct{}{}
		}
		for _, tag := range clip.Tags {
			if tag != "" {
				p.tags[tag] = struct{}{}
			}
		}
		if clip.CreatorID != "" {
			p.creators[clip.CreatorID] = struct{}{}
		}
	}
	return p
}

// indexClips maps clip ID to clip for the candidate pool.
func indexClips(clips []models.Clip) map[string]*models.Clip {
	byID := make(map[string]*models.Clip, len(clips))
	for i := range clips {
		byID[clips[i].ID] = &clips[i]
	}
	return byID
}

// candidateEligible reports whether a clip can be recommended at all:
// live, top-level, and not already listened to.
func candidateEligible(clip *models.Clip, listened map[string]struct{}) bool {
	if clip.Status != models.ClipStatusLive {
		return false
	}
	if clip.IsReply() {
		return false
	}
	_, seen := listened[clip.ID]
	return !seen
}

// recencyBonus decays linearly from 1 to 0 over the decay horizon.
func recencyBonus(clip *models.Clip, now time.Time, decayHours float64) float64 {
	hours := now.Sub(clip.CreatedAt).Hours()
	if hours < 0 {
		hours = 0
	}
	bonus := 1 - hours/decayHours
	if bonus < 0 {
		return 0
	}
	return bonus
}

// tagOverlap counts how many of the clip's tags appear in the profile set.
func tagOverlap(clip *models.Clip, tags map[string]struct{}) int {
	var n int
	for _, tag := range clip.Tags {
		if _, ok := tags[tag]; ok {
			n++
		}
	}
	return n
}

// topRecommendations stable-sorts scored candidates descending and
// truncates to limit.
func topRecommendations(recs []Recommendation, limit int) []Recommendation {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}
