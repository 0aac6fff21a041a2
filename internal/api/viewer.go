// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/melloom/Vocalix-sub005/internal/logging"
	"github.com/melloom/Vocalix-sub005/internal/models"
	"github.com/melloom/Vocalix-sub005/internal/store"
)

// resolveViewer derives the requesting viewer from the bearer token.
// Identity is optional everywhere: a missing, malformed, or expired token
// degrades to the anonymous viewer instead of rejecting the request, so a
// stale client keeps a working (if generic) feed.
func (s *Server) resolveViewer(r *http.Request) models.Viewer {
	tokenString := bearerToken(r)
	if tokenString == "" || s.tokens == nil {
		return models.AnonymousViewer()
	}

	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		logging.Debug().
			Str("request_id", logging.RequestIDFromContext(r.Context())).
			Str("reason", logging.SanitizeError(err.Error())).
			Msg("viewer token rejected, serving anonymous")
		return models.AnonymousViewer()
	}

	stored, err := s.viewers.Viewer(r.Context(), claims.ViewerID())
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logging.Warn().
				Err(err).
				Str("viewer", logging.SanitizeViewerID(claims.ViewerID())).
				Msg("viewer lookup failed, serving anonymous")
			return models.AnonymousViewer()
		}
		// Token is valid but the profile has no stored capabilities yet.
		viewer := models.AnonymousViewer()
		viewer.ID = claims.ViewerID()
		return viewer
	}
	return *stored
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
