// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

//go:build !nats

package eventprocessor

import (
	"context"
)

// StreamInitializer is a stub when NATS dependencies are not compiled in.
type StreamInitializer struct{}

// NewStreamInitializer returns an error when NATS support is not
// compiled in.
func NewStreamInitializer(js interface{}, cfg *StreamConfig) (*StreamInitializer, error) {
	return nil, ErrNATSDisabled
}

// IsHealthy always reports false for the stub.
func (s *StreamInitializer) IsHealthy(ctx context.Context) bool {
	return false
}
