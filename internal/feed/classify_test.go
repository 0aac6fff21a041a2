// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package feed

import (
	"testing"

	"github.com/melloom/Vocalix-sub005/internal/models"
)

func TestKeywordClassifier(t *testing.T) {
	c := DefaultKeywordClassifier()

	tests := []struct {
		name   string
		tags   []string
		want   string
		wantOK bool
	}{
		{"exact keyword", []string{"music"}, "music", true},
		{"tag containing keyword", []string{"standup-comedy"}, "comedy", true},
		{"keyword containing tag", []string{"stor"}, "stories", true},
		{"case insensitive", []string{"FUNNY"}, "comedy", true},
		{"first category wins", []string{"song", "joke"}, "music", true},
		{"no match", []string{"gardening"}, "", false},
		{"no tags", nil, "", false},
		{"empty tags skipped", []string{"", ""}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip := models.Clip{ID: "x", Tags: tt.tags}
			got, ok := c.Classify(&clip)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Classify() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestKeywordClassifierRegister(t *testing.T) {
	c := NewKeywordClassifier()
	c.Register("tech", []string{"Coding", "AI"})
	c.Register("food", []string{"recipe"})

	categories := c.Categories()
	if len(categories) != 2 || categories[0] != "tech" || categories[1] != "food" {
		t.Errorf("Categories() = %v, want [tech food]", categories)
	}

	clip := models.Clip{ID: "x", Tags: []string{"coding"}}
	if got, ok := c.Classify(&clip); !ok || got != "tech" {
		t.Errorf("Classify() = (%q, %v), want (tech, true)", got, ok)
	}

	// Re-registering replaces the keyword list without duplicating the
	// category.
	c.Register("tech", []string{"hardware"})
	if got := c.Categories(); len(got) != 2 {
		t.Errorf("Categories() len = %d after re-register, want 2", len(got))
	}
	if _, ok := c.Classify(&clip); ok {
		t.Error("old keyword still matches after re-register")
	}
}
