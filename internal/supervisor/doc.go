// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

// Package supervisor provides Suture-based process supervision.
//
// The tree has three layers for failure isolation: data (snapshot
// refresh, listen-log drain), events (NATS consumption, refresh
// coalescing), and api (HTTP server). A crash in the events layer never
// takes the API layer down; it keeps serving from the last published
// snapshot.
package supervisor
