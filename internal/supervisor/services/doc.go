// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

// Package services provides Suture service wrappers for application
// components: the HTTP server, snapshot refresher, listen-log drainer,
// and refresh coalescer.
package services
