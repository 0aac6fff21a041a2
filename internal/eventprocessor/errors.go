// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package eventprocessor

import "errors"

var (
	// ErrMissingEventID is returned for events without an idempotency key.
	ErrMissingEventID = errors.New("event ID is required")

	// ErrUnknownKind is returned for events with an unrecognized kind.
	ErrUnknownKind = errors.New("unknown event kind")

	// ErrMissingPayload is returned when the payload field for the
	// event's kind is absent or incomplete.
	ErrMissingPayload = errors.New("event payload is missing or incomplete")

	// ErrProcessorClosed is returned after Close.
	ErrProcessorClosed = errors.New("processor is closed")

	// ErrNATSDisabled is returned by transport stubs compiled without
	// the nats build tag.
	ErrNATSDisabled = errors.New("NATS transport not available: build with -tags=nats")
)
