// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package feed

import (
	"testing"
	"time"

	"github.com/melloom/Vocalix-sub005/internal/models"
)

func TestFilterVisibleRules(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	viewer := models.Viewer{
		ID:              "viewer-1",
		BlockedCreators: map[string]struct{}{"creator-blocked": {}},
	}

	tests := []struct {
		name    string
		clip    models.Clip
		visible bool
	}{
		{
			name:    "live clip passes",
			clip:    testClip("ok", time.Hour, 10, nil, now),
			visible: true,
		},
		{
			name: "blocked creator",
			clip: func() models.Clip {
				c := testClip("x", time.Hour, 10, nil, now)
				c.CreatorID = "creator-blocked"
				return c
			}(),
			visible: false,
		},
		{
			name: "anonymized creator never blocked",
			clip: func() models.Clip {
				c := testClip("x", time.Hour, 10, nil, now)
				c.CreatorID = ""
				return c
			}(),
			visible: true,
		},
		{
			name: "hidden status",
			clip: func() models.Clip {
				c := testClip("x", time.Hour, 10, nil, now)
				c.Status = models.ClipStatusHidden
				return c
			}(),
			visible: false,
		},
		{
			name: "removed status",
			clip: func() models.Clip {
				c := testClip("x", time.Hour, 10, nil, now)
				c.Status = models.ClipStatusRemoved
				return c
			}(),
			visible: false,
		},
		{
			name: "processing status stays visible",
			clip: func() models.Clip {
				c := testClip("x", time.Hour, 10, nil, now)
				c.Status = models.ClipStatusProcessing
				return c
			}(),
			visible: true,
		},
		{
			name: "moderation decision blocked",
			clip: func() models.Clip {
				c := testClip("x", time.Hour, 10, nil, now)
				c.Moderation = &models.ModerationVerdict{Decision: "blocked"}
				return c
			}(),
			visible: false,
		},
		{
			name: "moderation falls back to legacy status reject",
			clip: func() models.Clip {
				c := testClip("x", time.Hour, 10, nil, now)
				c.Moderation = &models.ModerationVerdict{Status: "reject"}
				return c
			}(),
			visible: false,
		},
		{
			name: "moderation approve passes",
			clip: func() models.Clip {
				c := testClip("x", time.Hour, 10, nil, now)
				c.Moderation = &models.ModerationVerdict{Decision: "approve", Status: "reject"}
				return c
			}(),
			visible: true,
		},
		{
			name: "flagged at risk threshold",
			clip: func() models.Clip {
				c := testClip("x", time.Hour, 10, nil, now)
				c.Moderation = &models.ModerationVerdict{Flagged: true, Risk: 0.7}
				return c
			}(),
			visible: false,
		},
		{
			name: "flagged below threshold passes",
			clip: func() models.Clip {
				c := testClip("x", time.Hour, 10, nil, now)
				c.Moderation = &models.ModerationVerdict{Flagged: true, Risk: 0.69}
				return c
			}(),
			visible: true,
		},
		{
			name: "unflagged high risk passes the flag rule",
			clip: func() models.Clip {
				c := testClip("x", time.Hour, 10, nil, now)
				c.Moderation = &models.ModerationVerdict{Flagged: false, Risk: 0.95}
				return c
			}(),
			visible: true,
		},
		{
			name: "flagged with out-of-range risk clamps to one",
			clip: func() models.Clip {
				c := testClip("x", time.Hour, 10, nil, now)
				c.Moderation = &models.ModerationVerdict{Flagged: true, Risk: 42}
				return c
			}(),
			visible: false,
		},
		{
			name: "sensitive without capability",
			clip: func() models.Clip {
				c := testClip("x", time.Hour, 10, nil, now)
				c.ContentRating = models.RatingSensitive
				return c
			}(),
			visible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterVisible([]models.Clip{tt.clip}, &viewer)
			if visible := len(got) == 1; visible != tt.visible {
				t.Errorf("visible = %v, want %v", visible, tt.visible)
			}
		})
	}
}

func TestFilterVisibleSensitiveCapability(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	clip := testClip("x", time.Hour, 10, nil, now)
	clip.ContentRating = models.RatingSensitive

	allowed := models.Viewer{ID: "v", SensitiveContentAllowed: true}
	if got := FilterVisible([]models.Clip{clip}, &allowed); len(got) != 1 {
		t.Error("sensitive clip withheld from a viewer with the capability")
	}

	anonymous := models.AnonymousViewer()
	if got := FilterVisible([]models.Clip{clip}, &anonymous); len(got) != 0 {
		t.Error("sensitive clip shown to an anonymous viewer")
	}
}

func TestFilterVisibleIdempotent(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	viewer := models.Viewer{
		ID:              "viewer-1",
		BlockedCreators: map[string]struct{}{"creator-bad": {}},
	}

	clips := []models.Clip{
		testClip("a", time.Hour, 10, nil, now),
		func() models.Clip {
			c := testClip("b", time.Hour, 10, nil, now)
			c.CreatorID = "creator-bad"
			return c
		}(),
		func() models.Clip {
			c := testClip("c", time.Hour, 10, nil, now)
			c.Status = models.ClipStatusHidden
			return c
		}(),
		testClip("d", time.Hour, 10, nil, now),
	}

	once := FilterVisible(clips, &viewer)
	twice := FilterVisible(once, &viewer)

	if len(once) != 2 {
		t.Fatalf("first pass len = %d, want 2", len(once))
	}
	if len(twice) != len(once) {
		t.Fatalf("second pass len = %d, want %d", len(twice), len(once))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Errorf("item %d: %s != %s", i, once[i].ID, twice[i].ID)
		}
	}
}

func TestFilterVisibleEmpty(t *testing.T) {
	viewer := models.AnonymousViewer()
	if got := FilterVisible(nil, &viewer); got != nil {
		t.Errorf("FilterVisible(nil) = %v, want nil", got)
	}
}
