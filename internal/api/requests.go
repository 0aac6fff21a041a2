// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package api

import (
	"net/http"
	"strconv"

	"github.com/melloom/Vocalix-sub005/internal/validation"
)

// FeedRequest is the validated query surface of GET /api/v1/feed.
//
// PageSize zero selects the configured default; Pages zero means the first
// page. Window applies to top mode only and is ignored elsewhere.
type FeedRequest struct {
	Mode     string `validate:"required,feedmode"`
	Window   string `validate:"omitempty,timewindow"`
	TopicID  string `validate:"omitempty,max=64"`
	Category string `validate:"omitempty,max=64"`
	PageSize int    `validate:"min=0,max=100"`
	Pages    int    `validate:"min=0,max=1000"`
}

// RecommendRequest is the validated query surface of the recommendation
// endpoints. Limit zero selects the recommender's configured default.
type RecommendRequest struct {
	Limit int `validate:"min=0,max=50"`
}

// ListenRequest is the validated body of POST /api/v1/listens. ViewerID in
// the body is overridden by the bearer token's subject when one is present.
type ListenRequest struct {
	ClipID   string `json:"clip_id" validate:"required,max=64"`
	ViewerID string `json:"viewer_id" validate:"omitempty,max=64"`
}

// parseFeedRequest binds query parameters into a FeedRequest and validates
// it. Unparseable integers fall back to zero and are caught by the min/max
// tags only when negative was intended; garbage is treated as absent.
func parseFeedRequest(r *http.Request) (*FeedRequest, *validation.RequestValidationError) {
	q := r.URL.Query()
	req := &FeedRequest{
		Mode:     q.Get("mode"),
		Window:   q.Get("window"),
		TopicID:  q.Get("topic_id"),
		Category: q.Get("category"),
		PageSize: intParam(q.Get("page_size")),
		Pages:    intParam(q.Get("pages")),
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr
	}
	return req, nil
}

func parseRecommendRequest(r *http.Request) (*RecommendRequest, *validation.RequestValidationError) {
	req := &RecommendRequest{Limit: intParam(r.URL.Query().Get("limit"))}
	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr
	}
	return req, nil
}

func intParam(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
