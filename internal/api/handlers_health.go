// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the payload of GET /api/v1/health.
type HealthStatus struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`

	// SnapshotAgeSeconds is negative when no snapshot has loaded yet.
	SnapshotAgeSeconds float64 `json:"snapshot_age_seconds"`
	SnapshotClips      int     `json:"snapshot_clips"`
	SnapshotTopics     int     `json:"snapshot_topics"`
}

// handleHealth reports overall service health.
//
// @Summary Service health
// @Description Returns uptime plus snapshot freshness and size. Status is "degraded" when the snapshot is missing or older than the configured maximum.
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Health status"
// @Router /api/v1/health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	status := HealthStatus{
		Status:             "ok",
		UptimeSeconds:      time.Since(s.startTime).Seconds(),
		SnapshotAgeSeconds: -1,
	}

	snapshot, err := s.snapshots.Current()
	if err != nil {
		status.Status = "degraded"
	} else {
		age := s.snapshots.Age(time.Now())
		status.SnapshotAgeSeconds = age.Seconds()
		status.SnapshotClips = len(snapshot.Clips)
		status.SnapshotTopics = len(snapshot.Topics)
		if s.cfg.SnapshotMaxAge > 0 && age > s.cfg.SnapshotMaxAge {
			status.Status = "degraded"
		}
	}

	rw.Success(status)
}

// handleHealthLive is the liveness probe: alive means responding.
//
// @Summary Liveness probe
// @Description Returns 200 whenever the process can serve requests, regardless of snapshot state.
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse "Service is alive"
// @Router /api/v1/health/live [get]
func (s *Server) handleHealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// handleHealthNATS reports event-ingestion health.
//
// @Summary Event ingestion health
// @Description Reports whether NATS event ingestion is enabled and, when enabled, whether the content-event stream is reachable.
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse "Ingestion healthy or disabled"
// @Failure 503 {object} APIResponse "Ingestion enabled but unhealthy"
// @Router /api/v1/health/nats [get]
func (s *Server) handleHealthNATS(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if s.eventsHealth == nil {
		rw.Success(map[string]interface{}{"enabled": false})
		return
	}
	if !s.eventsHealth(r.Context()) {
		rw.ServiceUnavailable("event ingestion unhealthy")
		return
	}
	rw.Success(map[string]interface{}{"enabled": true, "status": "ok"})
}

// handleHealthReady is the readiness probe: ready means a snapshot is
// loaded and the feed can serve real content.
//
// @Summary Readiness probe
// @Description Returns 200 once a content snapshot has been loaded, 503 before.
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse "Ready to serve"
// @Failure 503 {object} APIResponse "Snapshot not loaded"
// @Router /api/v1/health/ready [get]
func (s *Server) handleHealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if _, err := s.snapshots.Current(); err != nil {
		rw.ServiceUnavailable("content snapshot not loaded yet")
		return
	}
	rw.Success(map[string]string{"status": "ready"})
}
