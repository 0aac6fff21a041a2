// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/melloom/Vocalix-sub005/internal/logging"
	"github.com/melloom/Vocalix-sub005/internal/models"
)

// Listen log errors.
var (
	// ErrLogClosed is returned when the listen log is closed.
	ErrLogClosed = errors.New("listen log is closed")

	// ErrNilEvent is returned when a nil event is passed to Append.
	ErrNilEvent = errors.New("listen event cannot be nil")
)

const listenLogPrefix = "listen:"

// ListenLogConfig contains configuration for the badger-backed listen log.
type ListenLogConfig struct {
	// Path is the BadgerDB directory. Empty runs in-memory (tests).
	Path string `json:"path"`

	// SyncWrites forces fsync on every append.
	SyncWrites bool `json:"sync_writes"`

	// CloseTimeout bounds how long Close waits for BadgerDB.
	CloseTimeout time.Duration `json:"close_timeout"`
}

// ListenLog buffers listen events durably before they reach the content
// store. Ingest acknowledges the listener as soon as the event is in the
// log; Drain flushes the backlog into the store on the slow path. Events
// carry their own IDs so a drain that dies halfway is safe to repeat.
type ListenLog struct {
	db  *badger.DB
	cfg ListenLogConfig

	totalAppends atomic.Int64
	totalDrained atomic.Int64

	mu     sync.RWMutex
	closed bool
}

// OpenListenLog opens (creating if needed) the listen log at the
// configured path.
func OpenListenLog(cfg ListenLogConfig) (*ListenLog, error) {
	var opts badger.Options
	if cfg.Path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
		opts.SyncWrites = cfg.SyncWrites
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	return &ListenLog{db: db, cfg: cfg}, nil
}

// Append persists one listen event. A missing event ID or timestamp is
// filled in before the write so drains stay idempotent.
func (l *ListenLog) Append(ctx context.Context, ev *models.ListenEvent) (string, error) {
	l.mu.RLock()
	if l.closed {
		l.mu.RUnlock()
		return "", ErrLogClosed
	}
	l.mu.RUnlock()

	if ev == nil {
		return "", ErrNilEvent
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	entry := *ev
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.ListenedAt.IsZero() {
		entry.ListenedAt = time.Now().UTC()
	}

	data, err := json.Marshal(&entry)
	if err != nil {
		return "", fmt.Errorf("marshal listen event: %w", err)
	}

	key := []byte(listenLogPrefix + entry.ID)
	err = l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		return "", fmt.Errorf("write to BadgerDB: %w", err)
	}

	l.totalAppends.Add(1)
	return entry.ID, nil
}

// Pending returns all buffered events, oldest write first within Badger's
// key order.
func (l *ListenLog) Pending(ctx context.Context) ([]models.ListenEvent, error) {
	l.mu.RLock()
	if l.closed {
		l.mu.RUnlock()
		return nil, ErrLogClosed
	}
	l.mu.RUnlock()

	var events []models.ListenEvent
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(listenLogPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			item := it.Item()
			var ev models.ListenEvent
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &ev)
			})
			if err != nil {
				logging.Warn().Err(err).Str("key", string(item.Key())).
					Msg("listen log: failed to unmarshal entry")
				continue
			}
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate listen log: %w", err)
	}
	return events, nil
}

// Drain flushes every buffered event into the content store, deleting
// each entry once the store accepted it. The first store error stops the
// drain; already-flushed entries stay deleted and the rest stay buffered.
func (l *ListenLog) Drain(ctx context.Context, dst ContentStore) (int, error) {
	events, err := l.Pending(ctx)
	if err != nil {
		return 0, err
	}

	drained := 0
	for i := range events {
		if err := ctx.Err(); err != nil {
			return drained, err
		}
		if err := dst.RecordListen(ctx, &events[i]); err != nil {
			return drained, fmt.Errorf("flush listen event %s: %w", events[i].ID, err)
		}
		key := []byte(listenLogPrefix + events[i].ID)
		if err := l.db.Update(func(txn *badger.Txn) error {
			return txn.Delete(key)
		}); err != nil {
			return drained, fmt.Errorf("delete flushed entry: %w", err)
		}
		drained++
	}

	l.totalDrained.Add(int64(drained))
	if drained > 0 {
		logging.Debug().Int("events", drained).Msg("listen log drained")
	}
	return drained, nil
}

// Len returns the number of buffered events.
func (l *ListenLog) Len() (int, error) {
	l.mu.RLock()
	if l.closed {
		l.mu.RUnlock()
		return 0, ErrLogClosed
	}
	l.mu.RUnlock()

	count := 0
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(listenLogPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count listen log: %w", err)
	}
	return count, nil
}

// Close shuts down the log with a bounded wait for BadgerDB.
func (l *ListenLog) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	timeout := l.cfg.CloseTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	l.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- l.db.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("close BadgerDB: %w", err)
		}
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("badgerdb close timeout after %v", timeout)
	}
}
