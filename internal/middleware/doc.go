// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

// Package middleware provides HTTP middleware shared by the API surface:
// request ID propagation for tracing, Prometheus request instrumentation,
// and gzip response compression. CORS and rate limiting come from the chi
// ecosystem and are composed in the api package.
package middleware
