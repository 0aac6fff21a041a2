// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

//go:build !nats

package main

import (
	"context"

	"github.com/melloom/Vocalix-sub005/internal/config"
	"github.com/melloom/Vocalix-sub005/internal/eventprocessor"
	"github.com/melloom/Vocalix-sub005/internal/logging"
	"github.com/melloom/Vocalix-sub005/internal/supervisor"
)

// natsComponents is a placeholder in builds without the nats tag.
type natsComponents struct{}

// initNATS refuses NATS configuration in builds that lack the support.
func initNATS(cfg *config.Config, _ *eventprocessor.Processor, _ *supervisor.Tree) (*natsComponents, error) {
	if cfg.NATS.Enabled {
		logging.Warn().Msg("NATS is enabled in config but this binary was built without the nats tag; event ingestion is off")
	}
	return nil, nil
}

func (c *natsComponents) Shutdown(_ context.Context) {}

// Health always reports false; builds without the nats tag cannot ingest.
func (c *natsComponents) Health(_ context.Context) bool { return false }
