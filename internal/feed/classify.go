// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package feed

import (
	"strings"

	"github.com/melloom/Vocalix-sub005/internal/models"
)

// Classifier assigns a category tag to a clip. It is a separate, swappable
// contract so the keyword-table default can later be replaced by a trained
// classifier without touching the scoring engine.
type Classifier interface {
	// Classify returns the clip's category and true, or false when the
	// clip matches no category.
	Classify(clip *models.Clip) (string, bool)

	// Categories returns the known category names.
	Categories() []string
}

// KeywordClassifier matches clip tags against per-category keyword lists.
// Matching is case-insensitive and substring-based in either direction, so
// the tag "standup-comedy" matches the keyword "comedy".
type KeywordClassifier struct {
	// categories preserves registration order for stable output.
	categories []string
	keywords   map[string][]string
}

// DefaultKeywordClassifier returns a classifier with the stock category
// table.
func DefaultKeywordClassifier() *KeywordClassifier {
	c := NewKeywordClassifier()
	c.Register("music", []string{"music", "song", "cover", "acoustic", "freestyle", "beat"})
	c.Register("comedy", []string{"comedy", "funny", "joke", "humor", "skit", "impression"})
	c.Register("stories", []string{"story", "storytime", "confession", "memory"})
	c.Register("news", []string{"news", "politics", "current", "headline"})
	c.Register("sports", []string{"sports", "game", "match", "team", "score"})
	c.Register("advice", []string{"advice", "tips", "howto", "question", "help"})
	return c
}

// NewKeywordClassifier returns an empty classifier.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{keywords: make(map[string][]string)}
}

// Register adds a category with its keyword list, replacing any previous
// list for the same category. Keywords are stored lowercased.
func (c *KeywordClassifier) Register(category string, keywords []string) {
	if _, exists := c.keywords[category]; !exists {
		c.categories = append(c.categories, category)
	}
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	c.keywords[category] = lowered
}

// Classify returns the first registered category with a keyword matching
// any of the clip's tags.
func (c *KeywordClassifier) Classify(clip *models.Clip) (string, bool) {
	if len(clip.Tags) == 0 {
		return "", false
	}

	tags := make([]string, len(clip.Tags))
	for i, t := range clip.Tags {
		tags[i] = strings.ToLower(t)
	}

	for _, category := range c.categories {
		for _, kw := range c.keywords[category] {
			for _, tag := range tags {
				if tag == "" {
					continue
				}
				if strings.Contains(tag, kw) || strings.Contains(kw, tag) {
					return category, true
				}
			}
		}
	}
	return "", false
}

// Categories returns the registered category names in registration order.
func (c *KeywordClassifier) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}
