// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package recommend

import (
	"sort"
	"time"

	"github.com/melloom/Vocalix-sub005/internal/models"
)

// RecommendCreators builds the "similar voices" list: clips by creators
// the viewer has not listened to but who publish on the same topics as the
// viewer's favorite creators.
//
// The pipeline: favorite creators from play counts, topic/tag signals from
// a sample of the favorites' clips, candidate creators from overlapping
// topics, then candidate clips scored by tag overlap, topic overlap, and
// recency. Any empty intermediate set yields an empty result.
func (e *Engine) RecommendCreators(listens []models.ListenEvent, pool []models.Clip, now time.Time) []Recommendation {
	cfg := &e.cfg.Creators

	recent := recentListens(listens, cfg.HistoryLimit)
	if len(recent) == 0 {
		return nil
	}

	byID := indexClips(pool)
	listened := make(map[string]struct{}, len(recent))
	favorites := favoriteCreators(recent, byID, listened, cfg.FavoriteCount)
	if len(favorites) == 0 {
		return nil
	}

	favTopics, favTags := favoriteSignals(pool, favorites, cfg.FavoriteClipSample)
	if len(favTopics) == 0 {
		return nil
	}

	candidates := candidateCreators(pool, favorites, favTopics, cfg.CandidateClipPool, cfg.CandidateCreators)
	if len(candidates) == 0 {
		return nil
	}

	var recs []Recommendation
	for i := range pool {
		clip := &pool[i]
		if _, ok := candidates[clip.CreatorID]; !ok {
			continue
		}
		if !candidateEligible(clip, listened) {
			continue
		}

		score := float64(tagOverlap(clip, favTags)) * cfg.TagOverlapScore
		if clip.TopicID != "" {
			if _, ok := favTopics[clip.TopicID]; ok {
				score += cfg.TopicOverlapScore
			}
		}
		score += recencyBonus(clip, now, e.cfg.RecencyDecayHours)

		recs = append(recs, Recommendation{Clip: *clip, Score: score})
	}

	return topRecommendations(recs, e.cfg.MaxResults)
}

// RecommendCreators recommends similar-creator clips with the default
// configuration.
func RecommendCreators(listens []models.ListenEvent, pool []models.Clip, now time.Time) []Recommendation {
	engine, err := NewEngine(nil, nopLogger())
	if err != nil {
		return nil
	}
	return engine.RecommendCreators(listens, pool, now)
}

// favoriteCreators counts plays per creator over the recent listens and
// returns the top few. Ties break on creator ID so the result is stable
// across runs. It also fills the listened set as a side product of the
// same pass.
func favoriteCreators(recent []models.ListenEvent, byID map[string]*models.Clip, listened map[string]struct{}, limit int) map[string]struct{} {
	plays := make(map[string]int)
	for _, ev := range recent {
		listened[ev.ClipID] = struct{}{}
		clip, ok := byID[ev.ClipID]
		if !ok || clip.CreatorID == "" {
			continue
		}
		plays[clip.CreatorID]++
	}
	if len(plays) == 0 {
		return nil
	}

	ranked := make([]string, 0, len(plays))
	for id := range plays {
		ranked = append(ranked, id)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if plays[ranked[i]] != plays[ranked[j]] {
			return plays[ranked[i]] > plays[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	favorites := make(map[string]struct{}, len(ranked))
	for _, id := range ranked {
		favorites[id] = struct{}{}
	}
	return favorites
}

// favoriteSignals collects the topics and tags used across a bounded
// sample of the favorites' clips.
func favoriteSignals(pool []models.Clip, favorites map[string]struct{}, sampleLimit int) (topics, tags map[string]struct{}) {
	topics = make(map[string]struct{})
	tags = make(map[string]struct{})

	var sampled int
	for i := range pool {
		clip := &pool[i]
		if _, ok := favorites[clip.CreatorID]; !ok {
			continue
		}
		if clip.TopicID != "" {
			topics[clip.TopicID] = struct{}{}
		}
		for _, tag := range clip.Tags {
			if tag != "" {
				tags[tag] = struct{}{}
			}
		}
		sampled++
		if sampled >= sampleLimit {
			break
		}
	}
	return topics, tags
}

// candidateCreators scans a bounded pool of clips on the favorites' topics
// and keeps the most frequently publishing non-favorite creators. Ties
// break on creator ID.
func candidateCreators(pool []models.Clip, favorites, favTopics map[string]struct{}, clipLimit, creatorLimit int) map[string]struct{} {
	freq := make(map[string]int)

	var scanned int
	for i := range pool {
		clip := &pool[i]
		if clip.CreatorID == "" || clip.TopicID == "" {
			continue
		}
		if _, fav := favorites[clip.CreatorID]; fav {
			continue
		}
		if _, ok := favTopics[clip.TopicID]; !ok {
			continue
		}
		freq[clip.CreatorID]++
		scanned++
		if scanned >= clipLimit {
			break
		}
	}
	if len(freq) == 0 {
		return nil
	}

	ranked := make([]string, 0, len(freq))
	for id := range freq {
		ranked = append(ranked, id)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if freq[ranked[i]] != freq[ranked[j]] {
			return freq[ranked[i]] > freq[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > creatorLimit {
		ranked = ranked[:creatorLimit]
	}

	out := make(map[string]struct{}, len(ranked))
	for _, id := range ranked {
		out[id] = struct{}{}
	}
	return out
}
