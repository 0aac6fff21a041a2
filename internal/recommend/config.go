// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package recommend

import "fmt"

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Content contains parameters for the "you might like" recommender.
	Content ContentConfig `json:"content"`

	// Creators contains parameters for the "similar voices" recommender.
	Creators CreatorsConfig `json:"creators"`

	// RecencyDecayHours is the linear recency-bonus horizon shared by both
	// recommenders. Default: 168 (one week).
	RecencyDecayHours float64 `json:"recency_decay_hours"`

	// MaxResults bounds both recommenders' output. Default: 6.
	MaxResults int `json:"max_results"`
}

// ContentConfig contains parameters for the content recommender.
type ContentConfig struct {
	// HistoryLimit bounds the recent listen events consulted. Default: 50.
	HistoryLimit int `json:"history_limit"`

	// TopicMatchScore is added when a candidate's topic was listened to.
	// Default: 3.
	TopicMatchScore float64 `json:"topic_match_score"`

	// TagOverlapScore is added per overlapping tag. Default: 2.
	TagOverlapScore float64 `json:"tag_overlap_score"`

	// CreatorMatchScore is added when the candidate's creator was already
	// listened to. Default: 2.
	CreatorMatchScore float64 `json:"creator_match_score"`
}

// CreatorsConfig contains parameters for the similar-creator recommender.
type CreatorsConfig struct {
	// HistoryLimit bounds the recent listen events consulted. Default: 30.
	HistoryLimit int `json:"history_limit"`

	// FavoriteCount is the number of most-played creators treated as
	// favorites. Default: 3.
	FavoriteCount int `json:"favorite_count"`

	// FavoriteClipSample bounds the favorites' clips sampled for topic and
	// tag signals. Default: 20.
	FavoriteClipSample int `json:"favorite_clip_sample"`

	// CandidateClipPool bounds the clips scanned for candidate creators.
	// Default: 50.
	CandidateClipPool int `json:"candidate_clip_pool"`

	// CandidateCreators is the number of candidate creators retained.
	// Default: 5.
	CandidateCreators int `json:"candidate_creators"`

	// TagOverlapScore is added per tag shared with the favorites' tag set.
	// Default: 3.
	TagOverlapScore float64 `json:"tag_overlap_score"`

	// TopicOverlapScore is added when the candidate's topic overlaps the
	// favorites' topics. Default: 2.
	TopicOverlapScore float64 `json:"topic_overlap_score"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Content: ContentConfig{
			HistoryLimit:      50,
			TopicMatchScore:   3,
			TagOverlapScore:   2,
			CreatorMatchScore: 2,
		},
		Creators: CreatorsConfig{
			HistoryLimit:       30,
			FavoriteCount:      3,
			FavoriteClipSample: 20,
			CandidateClipPool:  50,
			CandidateCreators:  5,
			TagOverlapScore:    3,
			TopicOverlapScore:  2,
		},
		RecencyDecayHours: 168,
		MaxResults:        6,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.RecencyDecayHours <= 0 {
		return fmt.Errorf("recency_decay_hours must be positive, got %f", c.RecencyDecayHours)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be positive, got %d", c.MaxResults)
	}
	if c.Content.HistoryLimit < 1 {
		return fmt.Errorf("content.history_limit must be positive, got %d", c.Content.HistoryLimit)
	}
	if c.Creators.HistoryLimit < 1 {
		return fmt.Errorf("creators.history_limit must be positive, got %d", c.Creators.HistoryLimit)
	}
	if c.Creators.FavoriteCount < 1 {
		return fmt.Errorf("creators.favorite_count must be positive, got %d", c.Creators.FavoriteCount)
	}
	if c.Creators.FavoriteClipSample < 1 {
		return fmt.Errorf("creators.favorite_clip_sample must be positive, got %d", c.Creators.FavoriteClipSample)
	}
	if c.Creators.CandidateClipPool < 1 {
		return fmt.Errorf("creators.candidate_clip_pool must be positive, got %d", c.Creators.CandidateClipPool)
	}
	if c.Creators.CandidateCreators < 1 {
		return fmt.Errorf("creators.candidate_creators must be positive, got %d", c.Creators.CandidateCreators)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}
