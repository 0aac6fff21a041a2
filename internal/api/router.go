// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package api

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/melloom/Vocalix-sub005/internal/auth"
	"github.com/melloom/Vocalix-sub005/internal/feed"
	"github.com/melloom/Vocalix-sub005/internal/middleware"
	"github.com/melloom/Vocalix-sub005/internal/models"
	"github.com/melloom/Vocalix-sub005/internal/recommend"
)

// SnapshotSource serves the current in-memory snapshot. store.Holder is
// the production implementation.
type SnapshotSource interface {
	Current() (*models.Snapshot, error)
	Age(now time.Time) time.Duration
}

// ListenAppender buffers listen events for asynchronous flushing.
// store.ListenLog is the production implementation.
type ListenAppender interface {
	Append(ctx context.Context, ev *models.ListenEvent) (string, error)
}

// ViewerSource resolves stored viewer capabilities.
type ViewerSource interface {
	Viewer(ctx context.Context, viewerID string) (*models.Viewer, error)
}

// ServerConfig configures the API server.
type ServerConfig struct {
	// Middleware configures CORS and rate limiting. Nil selects defaults.
	Middleware *ChiMiddlewareConfig

	// SnapshotMaxAge marks readiness degraded when the snapshot is older.
	// Zero disables the age check.
	SnapshotMaxAge time.Duration
}

// Server holds the handler dependencies and builds the router.
type Server struct {
	cfg         ServerConfig
	snapshots   SnapshotSource
	engine      *feed.Engine
	recommender *recommend.Engine
	listens     ListenAppender
	viewers     ViewerSource
	tokens      *auth.TokenManager

	// eventsHealth reports NATS ingestion health. Nil means ingestion is
	// not configured.
	eventsHealth func(ctx context.Context) bool

	startTime time.Time
}

// SetEventsHealth wires the event-ingestion health probe served at
// /api/v1/health/nats.
func (s *Server) SetEventsHealth(fn func(ctx context.Context) bool) {
	s.eventsHealth = fn
}

// NewServer wires the API server. Tokens may be nil, which disables
// viewer identification; every request is then anonymous.
func NewServer(
	cfg ServerConfig,
	snapshots SnapshotSource,
	engine *feed.Engine,
	recommender *recommend.Engine,
	listens ListenAppender,
	viewers ViewerSource,
	tokens *auth.TokenManager,
) *Server {
	return &Server{
		cfg:         cfg,
		snapshots:   snapshots,
		engine:      engine,
		recommender: recommender,
		listens:     listens,
		viewers:     viewers,
		tokens:      tokens,
		startTime:   time.Now(),
	}
}

// Routes assembles the chi router: tracing and recovery globally, CORS on
// everything, rate limiting and instrumentation per group.
func (s *Server) Routes() chi.Router {
	mw := NewChiMiddleware(s.cfg.Middleware)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/health", func(r chi.Router) {
			r.Get("/", s.handleHealth)
			r.Get("/live", s.handleHealthLive)
			r.Get("/ready", s.handleHealthReady)
			r.Get("/nats", s.handleHealthNATS)
		})

		// Read endpoints share the standard limit and compression.
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit())
			r.Use(middleware.PrometheusMetrics)
			r.Use(middleware.Compression)

			r.Get("/feed", s.handleFeed)
			r.Get("/topics/today", s.handleTopicsToday)
			r.Get("/recommendations/clips", s.handleRecommendClips)
			r.Get("/recommendations/creators", s.handleRecommendCreators)
		})

		// Listen ingestion bursts harder than reads; it gets its own limit
		// and skips compression for the small ack payload.
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimitIngest())
			r.Use(middleware.PrometheusMetrics)

			r.Post("/listens", s.handleRecordListen)
		})
	})

	return r
}

// currentSnapshot fetches the held snapshot, writing a 503 when none has
// been loaded yet. Returns nil after writing the response.
func (s *Server) currentSnapshot(rw *ResponseWriter) *models.Snapshot {
	snapshot, err := s.snapshots.Current()
	if err != nil {
		rw.ServiceUnavailable("content snapshot not loaded yet")
		return nil
	}
	return snapshot
}
