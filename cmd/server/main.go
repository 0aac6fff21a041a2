// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

// Package main runs the Vocalix feed service.
//
// @title Vocalix API
// @version 1.0
// @description Feed ranking and curation service for social audio clips.
// @description
// @description ## Feeds
// @description
// @description Five ranking modes (hot, top, controversial, rising, trending)
// @description over an immutable content snapshot, with visibility filtering
// @description per viewer, topic curation, and listen-history recommendations.
// @description
// @description ## Identity
// @description
// @description Viewer identity is optional. A bearer token (HS256 JWT whose
// @description subject is the viewer ID) applies the viewer's stored
// @description capabilities; requests without one are served anonymously.
// @description
// @description ## Rate Limiting
// @description
// @description Default: 300 requests per minute per IP on read endpoints,
// @description 1200 per minute on listen ingestion.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/melloom/Vocalix-sub005
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	_ "github.com/melloom/Vocalix-sub005/docs" // swagger spec registration
	"github.com/melloom/Vocalix-sub005/internal/api"
	"github.com/melloom/Vocalix-sub005/internal/auth"
	"github.com/melloom/Vocalix-sub005/internal/config"
	"github.com/melloom/Vocalix-sub005/internal/eventprocessor"
	"github.com/melloom/Vocalix-sub005/internal/feed"
	"github.com/melloom/Vocalix-sub005/internal/logging"
	"github.com/melloom/Vocalix-sub005/internal/recommend"
	"github.com/melloom/Vocalix-sub005/internal/store"
	"github.com/melloom/Vocalix-sub005/internal/supervisor"
	"github.com/melloom/Vocalix-sub005/internal/supervisor/services"
)

//nolint:gocyclo // sequential wiring of every subsystem
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Bool("persistent", cfg.Database.Path != "").
		Bool("nats", cfg.NATS.Enabled).
		Msg("Starting Vocalix")

	// Content store: DuckDB when a path is configured, in-memory otherwise.
	var contentStore store.ContentStore
	if cfg.Database.Path != "" {
		db, err := store.NewDuckDB(store.DuckDBConfig{
			Path:      cfg.Database.Path,
			Threads:   cfg.Database.Threads,
			MaxMemory: cfg.Database.MaxMemory,
		})
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to open content database")
		}
		contentStore = db
		logging.Info().Str("path", cfg.Database.Path).Msg("Content database opened")
	} else {
		contentStore = store.NewMemory()
		logging.Info().Msg("Using in-memory content store")
	}
	defer func() {
		if err := contentStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing content store")
		}
	}()

	holder := store.NewHolder(contentStore)

	// Feed engine with the configured cache and paging knobs; scoring
	// weights stay at their defaults.
	feedCfg := feed.DefaultConfig()
	feedCfg.Cache.Enabled = cfg.Feed.CacheEnabled
	feedCfg.Cache.TTL = cfg.Feed.CacheTTL
	feedCfg.Cache.MaxEntries = cfg.Feed.CacheMaxEntries
	feedCfg.Pagination.DefaultPageSize = cfg.Feed.DefaultPageSize

	engine, err := feed.NewEngine(feedCfg, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create feed engine")
	}

	recommender, err := recommend.NewEngine(nil, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	listenLog, err := store.OpenListenLog(store.ListenLogConfig{
		Path:       cfg.ListenLog.Path,
		SyncWrites: cfg.ListenLog.SyncWrites,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open listen log")
	}
	defer func() {
		if err := listenLog.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing listen log")
		}
	}()

	var tokens *auth.TokenManager
	if cfg.Security.TokenSecret != "" {
		tokens, err = auth.NewTokenManager(cfg.Security.TokenSecret, cfg.Security.TokenTTL)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to create token manager")
		}
		logging.Info().Msg("Viewer tokens enabled")
	} else {
		logging.Info().Msg("Viewer tokens disabled; all requests are anonymous")
	}

	// Refresh path shared by the periodic service and the event
	// coalescer: reload the snapshot, then drop memoized rankings.
	refresh := func(ctx context.Context) error {
		if err := holder.Refresh(ctx); err != nil {
			return err
		}
		engine.Invalidate()
		return nil
	}

	coalescer, err := eventprocessor.NewCoalescer(eventprocessor.CoalescerConfig{
		Debounce:     cfg.Coalescer.Debounce,
		RefreshRate:  rate.Limit(cfg.Coalescer.RefreshPerSec),
		RefreshBurst: cfg.Coalescer.RefreshBurst,
	}, refresh, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create refresh coalescer")
	}

	processor, err := eventprocessor.NewProcessor(eventprocessor.ProcessorConfig{
		DedupCapacity: cfg.Coalescer.DedupCapacity,
		DedupTTL:      cfg.Coalescer.DedupTTL,
	}, contentStore, coalescer, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create event processor")
	}
	defer processor.Close()

	// Supervision tree: data, events, and API layers under one root.
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewSnapshotService(&refreshWrapper{refresh}, services.SnapshotServiceConfig{
		Interval:         cfg.Snapshot.RefreshInterval,
		RefreshOnStartup: true,
	}, logger))
	tree.AddDataService(services.NewListenLogService(listenLog, contentStore, services.ListenLogServiceConfig{
		Interval: cfg.ListenLog.DrainInterval,
	}, logger))

	tree.AddEventService(services.NewCoalescerService(coalescer))

	// NATS ingestion only exists in builds with the nats tag; elsewhere
	// this logs and returns nil.
	natsRes, err := initNATS(cfg, processor, tree)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize NATS event processing")
	}
	if natsRes != nil {
		defer natsRes.Shutdown(context.Background())
	}

	apiServer := api.NewServer(api.ServerConfig{
		Middleware: &api.ChiMiddlewareConfig{
			CORSAllowedOrigins:  cfg.Security.CORSOrigins,
			CORSAllowedMethods:  []string{"GET", "POST", "OPTIONS"},
			CORSAllowedHeaders:  []string{"Content-Type", "Authorization"},
			CORSMaxAge:          86400,
			RateLimitRequests:   cfg.Security.RateLimitRequests,
			IngestLimitRequests: cfg.Security.IngestLimitReqs,
			RateLimitWindow:     cfg.Security.RateLimitWindow,
			RateLimitDisabled:   cfg.Security.RateLimitDisabled,
		},
		SnapshotMaxAge: cfg.Snapshot.MaxAge,
	}, holder, engine, recommender, listenLog, contentStore, tokens)
	if natsRes != nil {
		apiServer.SetEventsHealth(natsRes.Health)
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      apiServer.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(httpServer, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("Vocalix ready")

	errCh := tree.ServeBackground(ctx)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received")
		// Give in-flight requests and final drains a bounded window.
		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, context.Canceled) {
				logging.Error().Err(err).Msg("Supervisor tree shutdown error")
			}
		case <-time.After(cfg.Server.ShutdownTimeout + 5*time.Second):
			logging.Warn().Msg("Supervisor tree shutdown timed out")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree stopped unexpectedly")
		}
	}

	logging.Info().Msg("Vocalix stopped")
}

// refreshWrapper adapts the composed refresh closure to the
// SnapshotRefresher interface.
type refreshWrapper struct {
	fn func(ctx context.Context) error
}

func (r *refreshWrapper) Refresh(ctx context.Context) error {
	return r.fn(ctx)
}
