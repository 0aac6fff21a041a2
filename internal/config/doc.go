// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

/*
Package config loads service configuration with Koanf v2 in three layers:

 1. Built-in defaults (always present)
 2. Optional YAML config file (config.yaml, or VOCALIX_CONFIG_PATH)
 3. Environment variables (VOCALIX_ prefix, highest priority)

Environment variables map to config paths by section: the first underscore
after the prefix separates the section from the key, so
VOCALIX_DATABASE_MAX_MEMORY becomes database.max_memory. Section names
therefore contain no underscores.

Everything runs with defaults out of the box: an in-memory store, no NATS,
anonymous-only viewers. Persistence, event ingestion, and viewer tokens
are opt-in.
*/
package config
