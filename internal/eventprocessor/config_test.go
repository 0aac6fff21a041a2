// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package eventprocessor

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestDefaultConfigsAreValid(t *testing.T) {
	cc := DefaultCoalescerConfig()
	if err := cc.Validate(); err != nil {
		t.Errorf("DefaultCoalescerConfig invalid: %v", err)
	}
	pc := DefaultProcessorConfig()
	if err := pc.Validate(); err != nil {
		t.Errorf("DefaultProcessorConfig invalid: %v", err)
	}
}

func TestCoalescerConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CoalescerConfig)
	}{
		{"zero debounce", func(c *CoalescerConfig) { c.Debounce = 0 }},
		{"negative debounce", func(c *CoalescerConfig) { c.Debounce = -time.Second }},
		{"zero rate", func(c *CoalescerConfig) { c.RefreshRate = 0 }},
		{"zero burst", func(c *CoalescerConfig) { c.RefreshBurst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCoalescerConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestProcessorConfigValidate(t *testing.T) {
	cfg := DefaultProcessorConfig()
	cfg.DedupCapacity = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero dedup capacity accepted")
	}

	cfg = DefaultProcessorConfig()
	cfg.DedupTTL = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero dedup TTL accepted")
	}
}

func TestDefaultStreamConfig(t *testing.T) {
	cfg := DefaultStreamConfig()
	if cfg.Name != "CONTENT_EVENTS" {
		t.Errorf("Name = %s", cfg.Name)
	}
	if len(cfg.Subjects) != 3 {
		t.Errorf("subjects = %d, want 3", len(cfg.Subjects))
	}
	if cfg.DuplicateWindow <= 0 {
		t.Error("dedup window must be positive")
	}
}

func TestDefaultCoalescerRate(t *testing.T) {
	cfg := DefaultCoalescerConfig()
	if cfg.RefreshRate > rate.Limit(10) {
		t.Errorf("refresh rate %v is suspiciously high for full re-ranks", cfg.RefreshRate)
	}
}
