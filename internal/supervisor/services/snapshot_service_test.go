// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package services

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/melloom/Vocalix-sub005/internal/logging"
	"github.com/melloom/Vocalix-sub005/internal/models"
	"github.com/melloom/Vocalix-sub005/internal/store"
)

type countingRefresher struct {
	refreshes atomic.Int32
	err       error
}

func (r *countingRefresher) Refresh(ctx context.Context) error {
	r.refreshes.Add(1)
	return r.err
}

func TestSnapshotServiceRefreshOnStartup(t *testing.T) {
	r := &countingRefresher{}
	svc := NewSnapshotService(r, SnapshotServiceConfig{
		Interval:         time.Hour,
		RefreshOnStartup: true,
	}, logging.NewTestLogger(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Serve(ctx)
	}()

	deadline := time.After(2 * time.Second)
	for r.refreshes.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("startup refresh never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve returned %v", err)
	}
}

func TestSnapshotServicePeriodicRefresh(t *testing.T) {
	r := &countingRefresher{}
	svc := NewSnapshotService(r, SnapshotServiceConfig{
		Interval: 15 * time.Millisecond,
	}, logging.NewTestLogger(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = svc.Serve(ctx)
	}()

	deadline := time.After(2 * time.Second)
	for r.refreshes.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d refreshes ran", r.refreshes.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSnapshotServiceSurvivesRefreshErrors(t *testing.T) {
	r := &countingRefresher{err: errors.New("store unavailable")}
	svc := NewSnapshotService(r, SnapshotServiceConfig{
		Interval: 10 * time.Millisecond,
	}, logging.NewTestLogger(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = svc.Serve(ctx)
	}()

	deadline := time.After(2 * time.Second)
	for r.refreshes.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("service stopped retrying after refresh error")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestListenLogServiceDrains(t *testing.T) {
	dst := store.NewMemory()
	ctx := context.Background()
	if err := dst.UpsertClip(ctx, &models.Clip{
		ID:        "c1",
		CreatedAt: time.Now(),
		Status:    models.ClipStatusLive,
	}); err != nil {
		t.Fatalf("UpsertClip: %v", err)
	}

	log, err := store.OpenListenLog(store.ListenLogConfig{})
	if err != nil {
		t.Fatalf("OpenListenLog: %v", err)
	}
	defer func() {
		_ = log.Close()
	}()
	if _, err := log.Append(ctx, &models.ListenEvent{ViewerID: "v1", ClipID: "c1"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	svc := NewListenLogService(log, dst, ListenLogServiceConfig{
		Interval: 10 * time.Millisecond,
	}, logging.NewTestLogger(io.Discard))

	runCtx, cancel := context.WithCancel(context.Background())
	go func() {
		_ = svc.Serve(runCtx)
	}()

	deadline := time.After(2 * time.Second)
	for {
		snap, err := dst.Snapshot(ctx)
		if err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
		if len(snap.Listens) == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("listen event never drained into the store")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
}
