// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package cache

import (
	"time"
)

// Dedup tracks recently seen keys for duplicate suppression, built on the
// LRU cache. Used by the event processor to drop redelivered messages.
type Dedup struct {
	lru *LRU[time.Time]
}

// NewDedup creates a deduplication window with the given capacity and TTL.
func NewDedup(capacity int, ttl time.Duration) *Dedup {
	return &Dedup{lru: NewLRU[time.Time](capacity, ttl)}
}

// IsDuplicate reports whether the key was seen within the TTL window.
// Unseen keys are recorded with the current timestamp.
func (d *Dedup) IsDuplicate(key string) bool {
	if d.lru.Contains(key) {
		// Refresh recency for repeated duplicates.
		d.lru.Add(key, time.Now())
		return true
	}
	d.lru.Add(key, time.Now())
	return false
}

// Seen reports whether the key was seen within the TTL window without
// recording it. Callers that must not mark a key until their own work
// succeeds pair this with Record.
func (d *Dedup) Seen(key string) bool {
	return d.lru.Contains(key)
}

// Record marks the key as seen.
func (d *Dedup) Record(key string) {
	d.lru.Add(key, time.Now())
}

// Len returns the number of tracked keys.
func (d *Dedup) Len() int {
	return d.lru.Len()
}

// Clear forgets all tracked keys.
func (d *Dedup) Clear() {
	d.lru.Clear()
}
