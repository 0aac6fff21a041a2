// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package feed

import (
	"math"
	"sort"
	"time"

	"github.com/melloom/Vocalix-sub005/internal/models"
)

// Curator selects the day's spotlight topic and a bounded set of secondary
// topics. A nil config selects production defaults.
type Curator struct {
	cfg *Config
}

// NewCurator creates a Curator. Passing nil selects DefaultConfig.
func NewCurator(cfg *Config) *Curator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Curator{cfg: cfg}
}

// scoredTopic pairs a topic with its composite curation score.
type scoredTopic struct {
	topic models.Topic
	score float64
	// ageDays is the topic's age in days at curation time.
	ageDays float64
	// hasActivity reports whether the topic has any posts or listens.
	hasActivity bool
}

// CurateTopics picks the spotlight topic (the active topic whose calendar
// date equals today's) and up to MaxSecondary secondary topics from the
// rest.
//
// Secondary selection is greedy over composite-score rank: a topic is
// accepted when it has activity, is fresh (within FreshAgeDays), or fewer
// than MinGuaranteed have been accepted so far. Remaining slots backfill
// from the highest-scored leftovers. The secondary list never contains the
// spotlight topic and never exceeds MaxSecondary entries.
//
// Zero topics for today is a normal outcome: spotlight comes back nil and
// the caller decides what to display instead.
func (c *Curator) CurateTopics(topics []models.Topic, metrics map[string]models.TopicMetrics, now time.Time) models.CuratedTopics {
	cfg := &c.cfg.Curation
	today := now.Format(models.TopicDateLayout)

	var spotlight *models.Topic
	remaining := make([]scoredTopic, 0, len(topics))

	for _, topic := range topics {
		if spotlight == nil && topic.Active && topic.DateKey() == today {
			t := topic
			spotlight = &t
			continue
		}

		m := metrics[topic.ID]
		ageDays := math.Max(0, now.Sub(topic.Date).Hours()/24)

		recencyScore := math.Exp(-ageDays / cfg.RecencyDecayDays)
		engagementSignal := float64(m.Posts) + float64(m.Listens)/cfg.ListenDivisor
		engagementScore := 1 - math.Exp(-engagementSignal)

		score := cfg.RecencyWeight*recencyScore + cfg.EngagementWeight*engagementScore
		if m.HasActivity() {
			score += cfg.ActivityBonus
		} else {
			score -= cfg.InactivityPenalty
		}
		if !topic.Active {
			score -= cfg.InactiveQualityPenalty
		}

		remaining = append(remaining, scoredTopic{
			topic:       topic,
			score:       score,
			ageDays:     ageDays,
			hasActivity: m.HasActivity(),
		})
	}

	sort.SliceStable(remaining, func(i, j int) bool {
		return remaining[i].score > remaining[j].score
	})

	secondary := c.selectSecondary(remaining)
	return models.CuratedTopics{Spotlight: spotlight, Secondary: secondary}
}

// selectSecondary applies the greedy accept pass and then backfills from
// the skipped candidates in rank order.
func (c *Curator) selectSecondary(ranked []scoredTopic) []models.Topic {
	cfg := &c.cfg.Curation

	accepted := make([]models.Topic, 0, cfg.MaxSecondary)
	var skipped []scoredTopic

	for _, st := range ranked {
		if len(accepted) >= cfg.MaxSecondary {
			break
		}
		if st.hasActivity || st.ageDays <= cfg.FreshAgeDays || len(accepted) < cfg.MinGuaranteed {
			accepted = append(accepted, st.topic)
		} else {
			skipped = append(skipped, st)
		}
	}

	for _, st := range skipped {
		if len(accepted) >= cfg.MaxSecondary {
			break
		}
		accepted = append(accepted, st.topic)
	}

	return accepted
}

// CurateTopics curates topics with the default configuration.
func CurateTopics(topics []models.Topic, metrics map[string]models.TopicMetrics, now time.Time) models.CuratedTopics {
	return NewCurator(nil).CurateTopics(topics, metrics, now)
}
