// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

// Package eventprocessor moves content change events between the ingest
// surface, NATS JetStream, and the content store.
//
// Events flow publisher -> JetStream -> processor. The processor dedupes
// by event ID, applies the change to the store, and pokes the coalescer,
// which debounces bursts of changes into a single snapshot refresh and
// feed-cache invalidation.
//
// The NATS transport (publisher, subscriber, embedded server, stream
// init) is compiled behind the "nats" build tag; without the tag, stub
// implementations return a descriptive error and the processor can still
// be driven directly, which is how the tests exercise it.
package eventprocessor
