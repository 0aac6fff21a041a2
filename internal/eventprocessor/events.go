// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package eventprocessor

import (
	"time"

	"github.com/google/uuid"

	"github.com/melloom/Vocalix-sub005/internal/models"
)

// SchemaVersion is the current event schema version. Increment on
// breaking changes to ContentEvent.
const SchemaVersion = 1

// EventKind identifies what a content event describes.
type EventKind string

// Event kinds.
const (
	KindClipCreated    EventKind = "clip.created"
	KindClipUpdated    EventKind = "clip.updated"
	KindClipDeleted    EventKind = "clip.deleted"
	KindTopicUpserted  EventKind = "topic.upserted"
	KindListenRecorded EventKind = "listen.recorded"
)

// Valid reports whether the kind is one the processor understands.
func (k EventKind) Valid() bool {
	switch k {
	case KindClipCreated, KindClipUpdated, KindClipDeleted,
		KindTopicUpserted, KindListenRecorded:
		return true
	}
	return false
}

// ContentEvent is the canonical change event carried over NATS. Exactly
// one payload field is set, matching the kind: Clip for clip.* (ClipID
// only for deletes), Topic for topic.upserted, Listen for
// listen.recorded.
type ContentEvent struct {
	// SchemaVersion tracks the event format. Zero means version 1.
	SchemaVersion int `json:"schema_version,omitempty"`

	// EventID is the idempotency key. The processor drops events whose
	// ID it has already seen inside the dedup window.
	EventID string `json:"event_id"`

	// Kind selects the payload.
	Kind EventKind `json:"kind"`

	// OccurredAt is when the change happened at the producer.
	OccurredAt time.Time `json:"occurred_at"`

	// ClipID carries the target for clip.deleted.
	ClipID string `json:"clip_id,omitempty"`

	// Clip carries the new state for clip.created and clip.updated.
	Clip *models.Clip `json:"clip,omitempty"`

	// Topic carries the new state for topic.upserted.
	Topic *models.Topic `json:"topic,omitempty"`

	// Listen carries the event for listen.recorded.
	Listen *models.ListenEvent `json:"listen,omitempty"`
}

// NewClipEvent creates a clip change event with a fresh ID and timestamp.
func NewClipEvent(kind EventKind, clip *models.Clip) *ContentEvent {
	ev := &ContentEvent{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.NewString(),
		Kind:          kind,
		OccurredAt:    time.Now().UTC(),
	}
	if kind == KindClipDeleted {
		if clip != nil {
			ev.ClipID = clip.ID
		}
		return ev
	}
	ev.Clip = clip
	return ev
}

// NewTopicEvent creates a topic upsert event.
func NewTopicEvent(topic *models.Topic) *ContentEvent {
	return &ContentEvent{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.NewString(),
		Kind:          KindTopicUpserted,
		OccurredAt:    time.Now().UTC(),
		Topic:         topic,
	}
}

// NewListenEvent creates a listen event around the given record.
func NewListenEvent(listen *models.ListenEvent) *ContentEvent {
	return &ContentEvent{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.NewString(),
		Kind:          KindListenRecorded,
		OccurredAt:    time.Now().UTC(),
		Listen:        listen,
	}
}

// Validate checks required fields against the kind.
func (e *ContentEvent) Validate() error {
	if e.EventID == "" {
		return ErrMissingEventID
	}
	if !e.Kind.Valid() {
		return ErrUnknownKind
	}
	switch e.Kind {
	case KindClipCreated, KindClipUpdated:
		if e.Clip == nil || e.Clip.ID == "" {
			return ErrMissingPayload
		}
	case KindClipDeleted:
		if e.ClipID == "" {
			return ErrMissingPayload
		}
	case KindTopicUpserted:
		if e.Topic == nil || e.Topic.ID == "" {
			return ErrMissingPayload
		}
	case KindListenRecorded:
		if e.Listen == nil || e.Listen.ClipID == "" || e.Listen.ViewerID == "" {
			return ErrMissingPayload
		}
	}
	return nil
}

// GetSchemaVersion returns the schema version, defaulting to 1 for
// events written before the field existed.
func (e *ContentEvent) GetSchemaVersion() int {
	if e.SchemaVersion == 0 {
		return 1
	}
	return e.SchemaVersion
}

// Subject returns the NATS subject for this event, e.g. "clips.created"
// or "listens.recorded".
func (e *ContentEvent) Subject() string {
	switch e.Kind {
	case KindClipCreated:
		return "clips.created"
	case KindClipUpdated:
		return "clips.updated"
	case KindClipDeleted:
		return "clips.deleted"
	case KindTopicUpserted:
		return "topics.upserted"
	case KindListenRecorded:
		return "listens.recorded"
	}
	return "events.unknown"
}
