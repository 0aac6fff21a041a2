// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/melloom/Vocalix-sub005/internal/models"
	"github.com/melloom/Vocalix-sub005/internal/validation"
)

// maxListenBody bounds the request body; a listen event is tiny.
const maxListenBody = 4 << 10

// handleRecordListen ingests a listen event.
//
// @Summary Record a listen
// @Description Appends a listen event to the buffered log; it reaches the ranking snapshot on the next background drain and refresh, not synchronously. The bearer token's subject overrides any viewer_id in the body.
// @Tags Listens
// @Accept json
// @Produce json
// @Param listen body ListenRequest true "Listen event"
// @Success 202 {object} APIResponse "Event buffered"
// @Failure 400 {object} APIResponse "Missing clip_id or viewer identity"
// @Router /api/v1/listens [post]
func (s *Server) handleRecordListen(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ListenRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxListenBody))
	if err := decoder.Decode(&req); err != nil {
		rw.BadRequest("invalid request body")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationFailed(apiErr.Message, apiErr.Details)
		return
	}

	viewer := s.resolveViewer(r)
	viewerID := viewer.ID
	if viewerID == "" {
		viewerID = req.ViewerID
	}
	if viewerID == "" {
		rw.BadRequest("viewer identity required: send a bearer token or viewer_id")
		return
	}

	id, err := s.listens.Append(r.Context(), &models.ListenEvent{
		ViewerID: viewerID,
		ClipID:   req.ClipID,
	})
	if err != nil {
		rw.InternalError(err)
		return
	}

	rw.Accepted(map[string]string{"id": id})
}
