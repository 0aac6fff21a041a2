// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/melloom/Vocalix-sub005/internal/models"
	"github.com/melloom/Vocalix-sub005/internal/store"
)

func TestRecordListenWithBodyViewer(t *testing.T) {
	srv, _, _ := newTestServer(t, testClips(time.Now()))

	body := strings.NewReader(`{"clip_id":"clip-new","viewer_id":"viewer-7"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/listens", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	if !ok || data["id"] == "" {
		t.Fatalf("expected event ID in response, got %v", resp.Data)
	}
}

func TestRecordListenTokenOverridesBodyViewer(t *testing.T) {
	srv, mem, holder := newTestServer(t, testClips(time.Now()))

	token, err := srv.tokens.GenerateToken("viewer-token")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	body := strings.NewReader(`{"clip_id":"clip-new","viewer_id":"viewer-body"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/listens", body)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	// Drain the buffered event into the store and confirm the token's
	// subject won.
	log, ok := srv.listens.(*store.ListenLog)
	if !ok {
		t.Fatalf("listens type %T", srv.listens)
	}
	if _, err := log.Drain(context.Background(), mem); err != nil {
		t.Fatalf("drain: %v", err)
	}
	if err := holder.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	snapshot, err := holder.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	var seen *models.ListenEvent
	for i := range snapshot.Listens {
		if snapshot.Listens[i].ClipID == "clip-new" {
			seen = &snapshot.Listens[i]
		}
	}
	if seen == nil {
		t.Fatal("listen event not drained into snapshot")
	}
	if seen.ViewerID != "viewer-token" {
		t.Fatalf("viewer = %q, want viewer-token (token subject)", seen.ViewerID)
	}
}

func TestRecordListenRejectsMissingClip(t *testing.T) {
	srv, _, _ := newTestServer(t, nil)

	body := strings.NewReader(`{"viewer_id":"viewer-7"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/listens", body)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRecordListenRejectsAnonymous(t *testing.T) {
	srv, _, _ := newTestServer(t, nil)

	body := strings.NewReader(`{"clip_id":"clip-new"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/listens", body)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRecordListenRejectsGarbageBody(t *testing.T) {
	srv, _, _ := newTestServer(t, nil)

	body := strings.NewReader(`{not json`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/listens", body)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
