// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package api

import (
	"net/http"
	"time"

	"github.com/melloom/Vocalix-sub005/internal/models"
	"github.com/melloom/Vocalix-sub005/internal/recommend"
)

// handleRecommendClips serves content recommendations.
//
// @Summary Clip recommendations
// @Description Returns clips matched to the viewer's listen history by topic and tag overlap with a recency bonus. Anonymous viewers and viewers without history get an empty list.
// @Tags Recommendations
// @Produce json
// @Param limit query int false "Maximum results (0 = default)"
// @Success 200 {object} APIResponse{data=[]recommend.Recommendation} "Recommended clips"
// @Failure 503 {object} APIResponse "Snapshot not loaded"
// @Router /api/v1/recommendations/clips [get]
func (s *Server) handleRecommendClips(w http.ResponseWriter, r *http.Request) {
	s.handleRecommend(w, r, s.recommender.ContentForViewer)
}

// handleRecommendCreators serves creator recommendations.
//
// @Summary Creator recommendations
// @Description Returns creators adjacent to the viewer's favorites: creators the viewer has not listened to whose clips share topics with the favorites' recent output.
// @Tags Recommendations
// @Produce json
// @Param limit query int false "Maximum results (0 = default)"
// @Success 200 {object} APIResponse{data=[]recommend.Recommendation} "Recommended creators"
// @Failure 503 {object} APIResponse "Snapshot not loaded"
// @Router /api/v1/recommendations/creators [get]
func (s *Server) handleRecommendCreators(w http.ResponseWriter, r *http.Request) {
	s.handleRecommend(w, r, s.recommender.CreatorsForViewer)
}

func (s *Server) handleRecommend(
	w http.ResponseWriter,
	r *http.Request,
	recommender func(snapshot *models.Snapshot, viewerID string, now time.Time) []recommend.Recommendation,
) {
	rw := NewResponseWriter(w, r)

	req, verr := parseRecommendRequest(r)
	if verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationFailed(apiErr.Message, apiErr.Details)
		return
	}

	snapshot := s.currentSnapshot(rw)
	if snapshot == nil {
		return
	}

	viewer := s.resolveViewer(r)
	if viewer.ID == "" {
		// No identity means no listen history to recommend from.
		rw.Success([]recommend.Recommendation{})
		return
	}

	recs := recommender(snapshot, viewer.ID, time.Now())
	if req.Limit > 0 && len(recs) > req.Limit {
		recs = recs[:req.Limit]
	}
	if recs == nil {
		recs = []recommend.Recommendation{}
	}

	rw.SuccessWithPagination(recs, &PaginationMeta{Count: len(recs)})
}
