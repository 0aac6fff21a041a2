// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

//go:build !nats

package eventprocessor

import (
	"context"
)

// EmbeddedServer is a stub when NATS dependencies are not compiled in.
// Build with -tags=nats to run an in-process NATS server.
type EmbeddedServer struct{}

// NewEmbeddedServer returns an error when NATS support is not compiled in.
func NewEmbeddedServer(cfg *ServerConfig) (*EmbeddedServer, error) {
	return nil, ErrNATSDisabled
}

// ClientURL returns an empty string for the stub.
func (s *EmbeddedServer) ClientURL() string {
	return ""
}

// Shutdown is a no-op stub.
func (s *EmbeddedServer) Shutdown(ctx context.Context) error {
	return nil
}
