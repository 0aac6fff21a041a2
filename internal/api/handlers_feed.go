// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/melloom/Vocalix-sub005/internal/feed"
)

// handleFeed serves the ranked clip feed.
//
// @Summary Ranked clip feed
// @Description Returns a page of the ranked feed for the requested mode. Pagination grows forward: pages=N returns the first N pages worth of clips. Sensitive, blocked, and non-live clips are filtered per the viewer's capabilities.
// @Tags Feed
// @Produce json
// @Param mode query string true "Ranking mode" Enums(hot, top, controversial, rising, trending)
// @Param window query string false "Time window (top mode only)" Enums(all, week, month)
// @Param topic_id query string false "Restrict to one topic"
// @Param category query string false "Restrict to one classifier category"
// @Param page_size query int false "Page length (0 = default)"
// @Param pages query int false "Pages consumed so far, including this one"
// @Success 200 {object} APIResponse{data=feed.RankResult} "Ranked feed page"
// @Failure 400 {object} APIResponse "Invalid mode, window, or paging parameters"
// @Failure 503 {object} APIResponse "Snapshot not loaded"
// @Router /api/v1/feed [get]
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, verr := parseFeedRequest(r)
	if verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationFailed(apiErr.Message, apiErr.Details)
		return
	}

	snapshot := s.currentSnapshot(rw)
	if snapshot == nil {
		return
	}

	result, err := s.engine.Rank(r.Context(), &feed.RankRequest{
		Snapshot: snapshot,
		Viewer:   s.resolveViewer(r),
		Mode:     feed.Mode(req.Mode),
		Window:   feed.TimeWindow(req.Window),
		TopicID:  req.TopicID,
		Category: req.Category,
		PageSize: req.PageSize,
		Pages:    req.Pages,
	})
	if err != nil {
		switch {
		case errors.Is(err, feed.ErrInvalidMode),
			errors.Is(err, feed.ErrInvalidWindow),
			errors.Is(err, feed.ErrInvalidPageSize),
			errors.Is(err, feed.ErrInvalidPageCount):
			rw.BadRequest(err.Error())
		default:
			rw.InternalError(err)
		}
		return
	}

	rw.SuccessWithPagination(result, &PaginationMeta{
		Total:    result.Total,
		Count:    len(result.Clips),
		PageSize: req.PageSize,
		Pages:    req.Pages,
		HasMore:  result.HasMore,
	})
}

// handleTopicsToday serves the curated topic selection.
//
// @Summary Today's curated topics
// @Description Returns the spotlight topic plus secondary picks for the current day. Curation prefers active topics dated today, scored by engagement with deterministic jitter.
// @Tags Feed
// @Produce json
// @Success 200 {object} APIResponse{data=models.CuratedTopics} "Curated topics"
// @Failure 503 {object} APIResponse "Snapshot not loaded"
// @Router /api/v1/topics/today [get]
func (s *Server) handleTopicsToday(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	snapshot := s.currentSnapshot(rw)
	if snapshot == nil {
		return
	}

	rw.Success(s.engine.CurateTopics(snapshot, time.Now()))
}
