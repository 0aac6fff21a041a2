// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package feed

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/melloom/Vocalix-sub005/internal/models"
)

// Scorer computes mode scores for clips. A nil config selects production
// defaults. Scorer holds no mutable state; one instance serves concurrent
// ranking passes without locking.
type Scorer struct {
	cfg *Config
}

// NewScorer creates a Scorer. Passing nil selects DefaultConfig.
func NewScorer(cfg *Config) *Scorer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Scorer{cfg: cfg}
}

// ScoreAndSort scores every ranking candidate under the given mode and
// returns them in descending score order. The sort is stable, so clips with
// identical scores keep their input order as the tiebreak.
//
// Replies never rank: a clip carrying a parent reference is skipped, not
// scored. Top mode excludes clips older than the window and rising mode
// excludes clips older than its age cutoff; excluded clips are absent from
// the result rather than ranked last.
//
// Malformed engagement data never fails the sort: non-numeric reaction
// values count as zero, a missing completion rate scores as 0.5, and a
// missing topic metric yields no boost.
func (s *Scorer) ScoreAndSort(clips []models.Clip, mode Mode, params ModeParams, now time.Time) ([]ScoredClip, error) {
	if !mode.Valid() {
		return nil, ErrInvalidMode
	}
	if mode == ModeTop {
		if _, err := ParseWindow(string(params.Window)); err != nil {
			return nil, err
		}
	}

	scored := make([]ScoredClip, 0, len(clips))
	for _, clip := range clips {
		if clip.IsReply() {
			continue
		}
		score, ranked := s.score(&clip, mode, params, now)
		if !ranked {
			continue
		}
		scored = append(scored, ScoredClip{Clip: clip, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored, nil
}

// ScoreAndSort scores and sorts clips with the default configuration.
func ScoreAndSort(clips []models.Clip, mode Mode, params ModeParams, now time.Time) ([]ScoredClip, error) {
	return NewScorer(nil).ScoreAndSort(clips, mode, params, now)
}

// score dispatches to the mode formula. The second return value reports
// whether the clip is ranked at all under this mode.
func (s *Scorer) score(clip *models.Clip, mode Mode, params ModeParams, now time.Time) (float64, bool) {
	switch mode {
	case ModeHot:
		return s.scoreHot(clip, params, now), true
	case ModeTop:
		return s.scoreTop(clip, params.Window, now)
	case ModeControversial:
		return s.scoreControversial(clip, now), true
	case ModeRising:
		return s.scoreRising(clip, now)
	case ModeTrending:
		return clip.TrendingScore, true
	default:
		return 0, false
	}
}

// scoreHot implements hot mode: recency with graceful decay, dampened
// engagement, topic and locality boosts, moderation and sensitivity
// penalties, and a deterministic tie-break jitter.
func (s *Scorer) scoreHot(clip *models.Clip, params ModeParams, now time.Time) float64 {
	cfg := &s.cfg.Hot

	freshness := math.Exp(-hoursOld(clip, now) / cfg.FreshnessDecayHours)
	reactionScore := math.Sqrt(reactionTotal(clip) + 1)
	listenScore := math.Sqrt(float64(clip.Listens) + 1)
	completion := completionScore(clip)

	var topicBoost float64
	if clip.TopicID != "" {
		if m, ok := params.Metrics[clip.TopicID]; ok {
			topicBoost = math.Min(cfg.TopicBoostCap,
				math.Log1p(float64(m.Posts))*cfg.TopicPostFactor+
					math.Log1p(float64(m.Listens))*cfg.TopicListenFactor)
		}
	}

	var localBoost float64
	if clip.City != "" && strings.EqualFold(clip.City, params.ViewerCity) {
		localBoost = cfg.LocalBoost
	}

	var sensitivePenalty float64
	if clip.IsSensitive() {
		sensitivePenalty = cfg.SensitivePenalty
	}

	var moderationPenalty float64
	if clip.Moderation != nil {
		moderationPenalty = clampRisk(clip.Moderation.Risk) * cfg.ModerationPenaltyScale
	}

	var processingPenalty float64
	if clip.Status == models.ClipStatusProcessing {
		processingPenalty = cfg.ProcessingPenalty
	}

	jitter := DeterministicJitter(clip.ID, cfg.JitterAmplitude)

	return cfg.FreshnessWeight*freshness +
		cfg.ReactionWeight*reactionScore +
		cfg.ListenWeight*listenScore +
		cfg.CompletionWeight*completion +
		topicBoost + localBoost + jitter -
		processingPenalty - moderationPenalty - sensitivePenalty
}

// scoreTop implements top mode: pure engagement within an optional time
// window. Clips created before the window opens are excluded from the
// ranking, not ranked last.
func (s *Scorer) scoreTop(clip *models.Clip, window TimeWindow, now time.Time) (float64, bool) {
	if d := window.Duration(); d > 0 && clip.CreatedAt.Before(now.Add(-d)) {
		return 0, false
	}

	cfg := &s.cfg.Top
	score := reactionTotal(clip)*cfg.ReactionWeight +
		float64(clip.Listens)*cfg.ListenWeight +
		completionScore(clip)*cfg.CompletionWeight
	return score, true
}

// scoreControversial implements controversial mode: high engagement
// amplified by reaction diversity and disagreement (variance across
// reaction types), with a gentler freshness decay than hot mode.
func (s *Scorer) scoreControversial(clip *models.Clip, now time.Time) float64 {
	cfg := &s.cfg.Controversial

	counts := reactionCounts(clip)
	variance := populationVariance(counts)

	engagement := math.Log1p(reactionTotal(clip) + float64(clip.Listens))
	diversityBonus := math.Min(float64(len(counts))*cfg.DiversityPerType, cfg.DiversityCap)
	varianceBonus := math.Min(math.Sqrt(variance)*cfg.VarianceScale, cfg.VarianceCap)
	freshness := math.Exp(-hoursOld(clip, now) / cfg.FreshnessDecayHours)

	return engagement * (1 + diversityBonus + varianceBonus) * (0.7 + 0.3*freshness)
}

// scoreRising implements rising mode: recent clips with strong velocity.
// Clips older than the age cutoff are excluded from the ranking.
func (s *Scorer) scoreRising(clip *models.Clip, now time.Time) (float64, bool) {
	cfg := &s.cfg.Rising

	hours := hoursOld(clip, now)
	if hours > cfg.MaxAgeHours {
		return 0, false
	}

	reactions := reactionTotal(clip)
	listens := float64(clip.Listens)

	ageWeight := math.Max(0, 1-hours/cfg.MaxAgeHours)
	performanceRatio := (reactions + listens) / math.Max(1, hours)

	score := (math.Sqrt(reactions+1) + math.Sqrt(listens+1) + completionScore(clip)*cfg.CompletionWeight) *
		ageWeight * (1 + math.Log1p(performanceRatio))
	return score, true
}

// hoursOld returns the clip's age in hours at the reference time, floored
// at zero for clips timestamped in the future.
func hoursOld(clip *models.Clip, now time.Time) float64 {
	return math.Max(0, now.Sub(clip.CreatedAt).Hours())
}

// completionScore returns the clip's completion rate clamped to [0, 1],
// or 0.5 when the rate is unknown.
func completionScore(clip *models.Clip) float64 {
	if clip.CompletionRate == nil {
		return 0.5
	}
	r := *clip.CompletionRate
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// reactionTotal sums the clip's reaction counts. Non-numeric values count
// as zero.
func reactionTotal(clip *models.Clip) float64 {
	var total float64
	for _, v := range clip.Reactions {
		total += coerceCount(v)
	}
	return total
}

// reactionCounts returns the clip's reaction counts by type, coerced to
// numbers.
func reactionCounts(clip *models.Clip) []float64 {
	if len(clip.Reactions) == 0 {
		return nil
	}
	counts := make([]float64, 0, len(clip.Reactions))
	for _, v := range clip.Reactions {
		counts = append(counts, coerceCount(v))
	}
	return counts
}

// coerceCount converts an upstream reaction value to a float64, treating
// anything non-numeric as zero.
func coerceCount(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// populationVariance computes the population variance of the values.
// Returns 0 for fewer than two values.
func populationVariance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return sq / float64(len(values))
}
