// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package store

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/melloom/Vocalix-sub005/internal/metrics"
	"github.com/melloom/Vocalix-sub005/internal/models"
)

// ErrNoSnapshot is returned by Holder.Current before the first refresh.
var ErrNoSnapshot = errors.New("no snapshot loaded yet")

// Holder keeps the latest content snapshot for lock-free reads. Request
// handlers read whatever snapshot is current; the refresh pipeline swaps
// in new ones. Snapshots are immutable once published.
type Holder struct {
	current atomic.Pointer[models.Snapshot]
	source  ContentStore
}

// NewHolder creates a holder reading from the given store.
func NewHolder(source ContentStore) *Holder {
	return &Holder{source: source}
}

// Current returns the latest snapshot, or ErrNoSnapshot before the first
// successful refresh.
func (h *Holder) Current() (*models.Snapshot, error) {
	snap := h.current.Load()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

// Refresh loads a fresh snapshot from the store and publishes it.
func (h *Holder) Refresh(ctx context.Context) error {
	start := time.Now()
	snap, err := h.source.Snapshot(ctx)
	if err != nil {
		metrics.RecordSnapshotLoad(time.Since(start), 0, err)
		return err
	}
	h.current.Store(snap)
	metrics.RecordSnapshotLoad(time.Since(start), len(snap.Clips), nil)
	return nil
}

// Age returns how old the current snapshot is, or zero before the first
// refresh.
func (h *Holder) Age(now time.Time) time.Duration {
	snap := h.current.Load()
	if snap == nil {
		return 0
	}
	return now.Sub(snap.TakenAt)
}
