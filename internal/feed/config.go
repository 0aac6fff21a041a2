// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package feed

import (
	"fmt"
	"time"
)

// Config contains all configuration for the feed engine. The defaults encode
// the production scoring formulas; tests and experiments may override
// individual knobs, but the formula shapes themselves are fixed.
type Config struct {
	// Hot contains parameters for hot mode.
	Hot HotConfig `json:"hot"`

	// Top contains parameters for top mode.
	Top TopConfig `json:"top"`

	// Controversial contains parameters for controversial mode.
	Controversial ControversialConfig `json:"controversial"`

	// Rising contains parameters for rising mode.
	Rising RisingConfig `json:"rising"`

	// Visibility contains parameters for the moderation/visibility filter.
	Visibility VisibilityConfig `json:"visibility"`

	// Curation contains parameters for topic curation.
	Curation CurationConfig `json:"curation"`

	// Pagination contains windowing parameters.
	Pagination PaginationConfig `json:"pagination"`

	// Cache contains ranking memoization parameters.
	Cache CacheConfig `json:"cache"`
}

// HotConfig contains parameters for hot mode.
type HotConfig struct {
	// FreshnessDecayHours is the exponential decay constant for recency.
	// Default: 12.
	FreshnessDecayHours float64 `json:"freshness_decay_hours"`

	// FreshnessWeight is the freshness term weight. Default: 0.5.
	FreshnessWeight float64 `json:"freshness_weight"`

	// ReactionWeight is the reaction term weight. Default: 0.2.
	ReactionWeight float64 `json:"reaction_weight"`

	// ListenWeight is the listen term weight. Default: 0.15.
	ListenWeight float64 `json:"listen_weight"`

	// CompletionWeight is the completion term weight. Default: 0.15.
	CompletionWeight float64 `json:"completion_weight"`

	// TopicBoostCap caps the topic activity boost. Default: 0.4.
	TopicBoostCap float64 `json:"topic_boost_cap"`

	// TopicPostFactor scales log1p(topic posts). Default: 0.12.
	TopicPostFactor float64 `json:"topic_post_factor"`

	// TopicListenFactor scales log1p(topic listens). Default: 0.05.
	TopicListenFactor float64 `json:"topic_listen_factor"`

	// LocalBoost is added when clip and viewer city match. Default: 0.08.
	LocalBoost float64 `json:"local_boost"`

	// SensitivePenalty is subtracted for sensitive-rated clips.
	// Default: 0.15.
	SensitivePenalty float64 `json:"sensitive_penalty"`

	// ModerationPenaltyScale multiplies the clamped moderation risk.
	// Default: 0.5.
	ModerationPenaltyScale float64 `json:"moderation_penalty_scale"`

	// ProcessingPenalty is subtracted for processing-status clips.
	// Default: 0.2.
	ProcessingPenalty float64 `json:"processing_penalty"`

	// JitterAmplitude bounds the deterministic tie-break jitter.
	// Default: 0.05.
	JitterAmplitude float64 `json:"jitter_amplitude"`
}

// TopConfig contains parameters for top mode.
type TopConfig struct {
	// ReactionWeight multiplies the reaction total. Default: 2.
	ReactionWeight float64 `json:"reaction_weight"`

	// ListenWeight multiplies the listen count. Default: 1.
	ListenWeight float64 `json:"listen_weight"`

	// CompletionWeight multiplies the completion score. Default: 10.
	CompletionWeight float64 `json:"completion_weight"`
}

// ControversialConfig contains parameters for controversial mode.
type ControversialConfig struct {
	// FreshnessDecayHours is the exponential decay constant. Default: 48.
	FreshnessDecayHours float64 `json:"freshness_decay_hours"`

	// DiversityPerType is the bonus per unique reaction type. Default: 0.3.
	DiversityPerType float64 `json:"diversity_per_type"`

	// DiversityCap caps the diversity bonus. Default: 1.5.
	DiversityCap float64 `json:"diversity_cap"`

	// VarianceScale multiplies sqrt(reaction variance). Default: 0.2.
	VarianceScale float64 `json:"variance_scale"`

	// VarianceCap caps the variance bonus. Default: 1.0.
	VarianceCap float64 `json:"variance_cap"`
}

// RisingConfig contains parameters for rising mode.
type RisingConfig struct {
	// MaxAgeHours is the hard age cutoff; older clips are excluded from
	// the ranking entirely. Default: 48.
	MaxAgeHours float64 `json:"max_age_hours"`

	// CompletionWeight multiplies the completion score. Default: 5.
	CompletionWeight float64 `json:"completion_weight"`
}

// VisibilityConfig contains parameters for the moderation filter.
type VisibilityConfig struct {
	// RiskThreshold excludes flagged clips at or above this moderation
	// risk, on a 0-1 scale. Default: 0.7.
	RiskThreshold float64 `json:"risk_threshold"`
}

// CurationConfig contains parameters for topic curation.
type CurationConfig struct {
	// MaxSecondary bounds the secondary topic list. Default: 6.
	MaxSecondary int `json:"max_secondary"`

	// MinGuaranteed is the number of secondary slots filled even when
	// every candidate is stale and inactive. Default: 3.
	MinGuaranteed int `json:"min_guaranteed"`

	// RecencyDecayDays is the exponential decay constant for topic age.
	// Default: 4.
	RecencyDecayDays float64 `json:"recency_decay_days"`

	// FreshAgeDays is the age under which a topic is accepted regardless
	// of activity. Default: 3.
	FreshAgeDays float64 `json:"fresh_age_days"`

	// RecencyWeight is the recency term weight. Default: 0.55.
	RecencyWeight float64 `json:"recency_weight"`

	// EngagementWeight is the engagement term weight. Default: 0.35.
	EngagementWeight float64 `json:"engagement_weight"`

	// ListenDivisor scales listens into the engagement signal.
	// Default: 20.
	ListenDivisor float64 `json:"listen_divisor"`

	// ActivityBonus is added for topics with any activity. Default: 0.1.
	ActivityBonus float64 `json:"activity_bonus"`

	// InactivityPenalty is subtracted for topics with no activity.
	// Default: 0.05.
	InactivityPenalty float64 `json:"inactivity_penalty"`

	// InactiveQualityPenalty is subtracted for topics with the active
	// flag off. Default: 0.4.
	InactiveQualityPenalty float64 `json:"inactive_quality_penalty"`
}

// PaginationConfig contains windowing parameters.
type PaginationConfig struct {
	// DefaultPageSize is used when a request leaves page size unset.
	// Default: 20.
	DefaultPageSize int `json:"default_page_size"`
}

// CacheConfig contains ranking memoization parameters.
type CacheConfig struct {
	// Enabled controls whether memoization is active. Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the memoized entry time-to-live. Kept short: the hot and
	// rising decay terms are hour-scale but perceptibly change within
	// minutes near tie-break boundaries. Default: 15s.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of memoized results.
	// Default: 4096.
	MaxEntries int `json:"max_entries"`

	// TimeBucket quantizes "now" in the cache key so nearby requests
	// share an entry. Default: 10s.
	TimeBucket time.Duration `json:"time_bucket"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Hot: HotConfig{
			FreshnessDecayHours:    12,
			FreshnessWeight:        0.5,
			ReactionWeight:         0.2,
			ListenWeight:           0.15,
			CompletionWeight:       0.15,
			TopicBoostCap:          0.4,
			TopicPostFactor:        0.12,
			TopicListenFactor:      0.05,
			LocalBoost:             0.08,
			SensitivePenalty:       0.15,
			ModerationPenaltyScale: 0.5,
			ProcessingPenalty:      0.2,
			JitterAmplitude:        0.05,
		},
		Top: TopConfig{
			ReactionWeight:   2,
			ListenWeight:     1,
			CompletionWeight: 10,
		},
		Controversial: ControversialConfig{
			FreshnessDecayHours: 48,
			DiversityPerType:    0.3,
			DiversityCap:        1.5,
			VarianceScale:       0.2,
			VarianceCap:         1.0,
		},
		Rising: RisingConfig{
			MaxAgeHours:      48,
			CompletionWeight: 5,
		},
		Visibility: VisibilityConfig{
			RiskThreshold: 0.7,
		},
		Curation: CurationConfig{
			MaxSecondary:           6,
			MinGuaranteed:          3,
			RecencyDecayDays:       4,
			FreshAgeDays:           3,
			RecencyWeight:          0.55,
			EngagementWeight:       0.35,
			ListenDivisor:          20,
			ActivityBonus:          0.1,
			InactivityPenalty:      0.05,
			InactiveQualityPenalty: 0.4,
		},
		Pagination: PaginationConfig{
			DefaultPageSize: 20,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        15 * time.Second,
			MaxEntries: 4096,
			TimeBucket: 10 * time.Second,
		},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if c.Hot.FreshnessDecayHours <= 0 {
		return fmt.Errorf("hot.freshness_decay_hours must be positive, got %f", c.Hot.FreshnessDecayHours)
	}
	if c.Hot.JitterAmplitude < 0 {
		return fmt.Errorf("hot.jitter_amplitude must be non-negative, got %f", c.Hot.JitterAmplitude)
	}
	if c.Controversial.FreshnessDecayHours <= 0 {
		return fmt.Errorf("controversial.freshness_decay_hours must be positive, got %f", c.Controversial.FreshnessDecayHours)
	}
	if c.Rising.MaxAgeHours <= 0 {
		return fmt.Errorf("rising.max_age_hours must be positive, got %f", c.Rising.MaxAgeHours)
	}
	if c.Visibility.RiskThreshold < 0 || c.Visibility.RiskThreshold > 1 {
		return fmt.Errorf("visibility.risk_threshold must be in [0, 1], got %f", c.Visibility.RiskThreshold)
	}
	if c.Curation.MaxSecondary < 0 {
		return fmt.Errorf("curation.max_secondary must be non-negative, got %d", c.Curation.MaxSecondary)
	}
	if c.Curation.MinGuaranteed > c.Curation.MaxSecondary {
		return fmt.Errorf("curation.min_guaranteed must be <= curation.max_secondary, got %d > %d",
			c.Curation.MinGuaranteed, c.Curation.MaxSecondary)
	}
	if c.Curation.RecencyDecayDays <= 0 {
		return fmt.Errorf("curation.recency_decay_days must be positive, got %f", c.Curation.RecencyDecayDays)
	}
	if c.Curation.ListenDivisor <= 0 {
		return fmt.Errorf("curation.listen_divisor must be positive, got %f", c.Curation.ListenDivisor)
	}
	if c.Pagination.DefaultPageSize < 1 {
		return fmt.Errorf("pagination.default_page_size must be positive, got %d", c.Pagination.DefaultPageSize)
	}
	if c.Cache.MaxEntries < 1 {
		return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
	}
	if c.Cache.TimeBucket <= 0 {
		return fmt.Errorf("cache.time_bucket must be positive, got %v", c.Cache.TimeBucket)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// Direct field copy - all nested structs contain only value types
	out := *c
	return &out
}
