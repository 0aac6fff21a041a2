// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package feed

import (
	"github.com/melloom/Vocalix-sub005/internal/models"
)

// DefaultRiskThreshold is the moderation risk (0-1 scale) at or above which
// a flagged clip is withheld from every viewer.
const DefaultRiskThreshold = 0.7

// FilterVisible returns the subset of clips the viewer is allowed to see,
// applying the moderation/visibility rules with the default risk threshold.
//
// The filter is idempotent: filtering an already-filtered set changes
// nothing. Rules are exclusionary predicates, so their order does not
// affect the result.
func FilterVisible(clips []models.Clip, viewer *models.Viewer) []models.Clip {
	return filterVisible(clips, viewer, DefaultRiskThreshold)
}

// filterVisible applies the visibility rules with an explicit risk
// threshold.
//
// Rules, each of which must pass:
//  1. The creator is not in the viewer's blocked set (anonymized clips
//     always pass).
//  2. Lifecycle status is not hidden or removed.
//  3. The moderation decision is not "blocked" or "reject". Decision falls
//     back to the legacy status field; a verdict carrying neither is
//     treated as not blocked.
//  4. The clip is not flagged with risk at or above the threshold.
//  5. Sensitive-rated clips require the viewer's sensitive-content
//     capability.
func filterVisible(clips []models.Clip, viewer *models.Viewer, riskThreshold float64) []models.Clip {
	if len(clips) == 0 {
		return nil
	}

	out := make([]models.Clip, 0, len(clips))
	for _, clip := range clips {
		if !clipVisible(&clip, viewer, riskThreshold) {
			continue
		}
		out = append(out, clip)
	}
	return out
}

// clipVisible evaluates every visibility rule for one clip.
func clipVisible(clip *models.Clip, viewer *models.Viewer, riskThreshold float64) bool {
	if viewer.Blocked(clip.CreatorID) {
		return false
	}

	if clip.Status == models.ClipStatusHidden || clip.Status == models.ClipStatusRemoved {
		return false
	}

	if v := clip.Moderation; v != nil {
		switch v.EffectiveDecision() {
		case "blocked", "reject":
			return false
		}

		if v.Flagged && clampRisk(v.Risk) >= riskThreshold {
			return false
		}
	}

	if clip.IsSensitive() && !viewer.SensitiveContentAllowed {
		return false
	}

	return true
}

// clampRisk clamps a moderation risk score to the 0-1 scale.
func clampRisk(risk float64) float64 {
	if risk < 0 {
		return 0
	}
	if risk > 1 {
		return 1
	}
	return risk
}
