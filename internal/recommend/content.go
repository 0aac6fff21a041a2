// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package recommend

import (
	"time"

	"github.com/melloom/Vocalix-sub005/internal/models"
)

// RecommendContent builds the "you might like" list: live, unlistened clips
// sharing a topic or creator with the viewer's recent listening history,
// scored by topic match, tag overlap, creator familiarity, and recency.
//
// A viewer with no history gets an empty list.
func (e *Engine) RecommendContent(listens []models.ListenEvent, pool []models.Clip, now time.Time) []Recommendation {
	cfg := &e.cfg.Content

	recent := recentListens(listens, cfg.HistoryLimit)
	if len(recent) == 0 {
		return nil
	}

	byID := indexClips(pool)
	profile := buildProfile(recent, byID)
	if len(profile.topics) == 0 && len(profile.creators) == 0 {
		return nil
	}

	var recs []Recommendation
	for i := range pool {
		clip := &pool[i]
		if !candidateEligible(clip, profile.listened) {
			continue
		}

		_, topicMatch := profile.topics[clip.TopicID]
		topicMatch = topicMatch && clip.TopicID != ""
		_, creatorMatch := profile.creators[clip.CreatorID]
		creatorMatch = creatorMatch && clip.CreatorID != ""

		// The candidate pool is topic- or creator-adjacent listening;
		// anything else is noise for this recommender.
		if !topicMatch && !creatorMatch {
			continue
		}

		var score float64
		if topicMatch {
			score += cfg.TopicMatchScore
		}
		score += float64(tagOverlap(clip, profile.tags)) * cfg.TagOverlapScore
		if creatorMatch {
			score += cfg.CreatorMatchScore
		}
		score += recencyBonus(clip, now, e.cfg.RecencyDecayHours)

		recs = append(recs, Recommendation{Clip: *clip, Score: score})
	}

	return topRecommendations(recs, e.cfg.MaxResults)
}

// RecommendContent recommends clips with the default configuration.
func RecommendContent(listens []models.ListenEvent, pool []models.Clip, now time.Time) []Recommendation {
	engine, err := NewEngine(nil, nopLogger())
	if err != nil {
		return nil
	}
	return engine.RecommendContent(listens, pool, now)
}
