// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
// It provides consistent structure for both successful and error responses, with metadata
// for observability and caching information.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"mode": "hot", "clips": [...], "has_more": true},
//	  "metadata": {
//	    "timestamp": "2026-08-29T12:00:00Z",
//	    "rank_time_ms": 4,
//	    "cached": false
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "Invalid feed mode",
//	    "details": {"field": "mode"}
//	  },
//	  "metadata": {"timestamp": "2026-08-29T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability and performance tracking.
//
// Fields:
//   - Timestamp: Server time when response was generated (RFC3339 format)
//   - RankTimeMS: Ranking pass execution time in milliseconds (0 if served from cache)
//   - Cached: Whether response was served from the memoization cache (omitted if false)
type Metadata struct {
	Timestamp  time.Time `json:"timestamp"`
	RankTimeMS int64     `json:"rank_time_ms,omitempty"`
	Cached     bool      `json:"cached,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters (bad mode, negative page size)
//   - STORE_ERROR: Snapshot fetch failure
//   - AUTHENTICATION_ERROR: Malformed viewer token
//   - NOT_FOUND: Resource doesn't exist
//   - RATE_LIMIT_EXCEEDED: Too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RankedClip pairs a clip with the score it earned under the requested mode.
type RankedClip struct {
	Clip  Clip    `json:"clip"`
	Score float64 `json:"score"`
}

// FeedResponse is the payload of GET /api/v1/feed: one forward-growing
// window of the ranked sequence plus a flag indicating whether more clips
// remain beyond it.
//
// Example:
//
//	{
//	  "mode": "hot",
//	  "clips": [{"clip": {...}, "score": 1.42}, ...],
//	  "page_size": 20,
//	  "pages": 1,
//	  "has_more": true,
//	  "total": 137
//	}
type FeedResponse struct {
	Mode     string       `json:"mode"`
	Clips    []RankedClip `json:"clips"`
	PageSize int          `json:"page_size"`
	Pages    int          `json:"pages"`
	HasMore  bool         `json:"has_more"`
	Total    int          `json:"total"`
}

// RecommendationsResponse is the payload of the recommendation endpoints:
// up to six clips, empty (never an error) when the viewer has no usable
// listening history.
type RecommendationsResponse struct {
	Clips []Clip `json:"clips"`
}

// HealthResponse is the payload of the health endpoints.
type HealthResponse struct {
	Status     string            `json:"status"`
	Version    string            `json:"version,omitempty"`
	Components map[string]string `json:"components,omitempty"`
}
