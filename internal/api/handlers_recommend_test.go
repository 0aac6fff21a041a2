// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/melloom/Vocalix-sub005/internal/models"
)

func TestRecommendClipsForViewerWithHistory(t *testing.T) {
	now := time.Now()
	clips := []models.Clip{
		{
			ID:        "clip-heard",
			CreatorID: "creator-a",
			CreatedAt: now.Add(-3 * time.Hour),
			TopicID:   "topic-1",
			Tags:      []string{"ambient"},
			Status:    models.ClipStatusLive,
		},
		{
			ID:        "clip-candidate",
			CreatorID: "creator-b",
			CreatedAt: now.Add(-2 * time.Hour),
			TopicID:   "topic-1",
			Tags:      []string{"ambient"},
			Status:    models.ClipStatusLive,
		},
	}
	srv, mem, holder := newTestServer(t, clips)

	err := mem.RecordListen(context.Background(), &models.ListenEvent{
		ViewerID:   "viewer-9",
		ClipID:     "clip-heard",
		ListenedAt: now.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("record listen: %v", err)
	}
	if err := holder.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	token, err := srv.tokens.GenerateToken("viewer-9")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/clips", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("data type %T", resp.Data)
	}
	if len(data) == 0 {
		t.Fatal("expected at least one recommendation")
	}
	first, ok := data[0].(map[string]interface{})
	if !ok {
		t.Fatalf("recommendation type %T", data[0])
	}
	clip, ok := first["clip"].(map[string]interface{})
	if !ok || clip["id"] != "clip-candidate" {
		t.Fatalf("first recommendation = %v, want clip-candidate", first)
	}
}

func TestRecommendClipsAnonymousIsEmpty(t *testing.T) {
	srv, _, _ := newTestServer(t, testClips(time.Now()))

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/clips", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("data type %T", resp.Data)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty recommendations for anonymous viewer, got %d", len(data))
	}
}

func TestRecommendCreatorsEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t, testClips(time.Now()))

	token, err := srv.tokens.GenerateToken("viewer-no-history")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/creators", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	// No history yields an empty but well-formed response.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Fatal("expected success")
	}
}

func TestRecommendLimitCapsResults(t *testing.T) {
	srv, _, _ := newTestServer(t, testClips(time.Now()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/clips?limit=999", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for limit above maximum", rec.Code)
	}
}
