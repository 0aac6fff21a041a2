// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package eventprocessor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/melloom/Vocalix-sub005/internal/cache"
	"github.com/melloom/Vocalix-sub005/internal/metrics"
	"github.com/melloom/Vocalix-sub005/internal/store"
)

// Processor applies content events to the store. Events are deduplicated
// by event ID before hitting storage, so JetStream redelivery and
// multi-source producers stay idempotent. After each applied event the
// coalescer is notified; it owns the decision of when to rebuild the
// snapshot.
type Processor struct {
	cfg       ProcessorConfig
	store     store.ContentStore
	coalescer *Coalescer
	dedup     *cache.Dedup
	logger    zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewProcessor creates a processor writing to the given store. The
// coalescer may be nil when no refresh pipeline is attached (tests,
// offline backfill).
func NewProcessor(cfg ProcessorConfig, contentStore store.ContentStore, coalescer *Coalescer, logger zerolog.Logger) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid processor config: %w", err)
	}
	if contentStore == nil {
		return nil, fmt.Errorf("content store is required")
	}

	return &Processor{
		cfg:       cfg,
		store:     contentStore,
		coalescer: coalescer,
		dedup:     cache.NewDedup(cfg.DedupCapacity, cfg.DedupTTL),
		logger:    logger.With().Str("component", "eventprocessor").Logger(),
	}, nil
}

// Process validates, dedupes, and applies one event. Duplicate events
// are dropped silently and reported via metrics.
func (p *Processor) Process(ctx context.Context, event *ContentEvent) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrProcessorClosed
	}
	p.mu.RUnlock()

	start := time.Now()
	metrics.RecordNATSConsume()

	if err := event.Validate(); err != nil {
		metrics.RecordNATSParseFailed()
		return fmt.Errorf("invalid event: %w", err)
	}

	if p.dedup.Seen(event.EventID) {
		metrics.RecordNATSDeduplicated()
		p.logger.Debug().
			Str("event_id", event.EventID).
			Str("kind", string(event.Kind)).
			Msg("duplicate event dropped")
		return nil
	}

	if err := p.apply(ctx, event); err != nil {
		// Leave the ID unrecorded so the redelivery is applied, not
		// dropped as a duplicate.
		return err
	}
	p.dedup.Record(event.EventID)

	metrics.RecordNATSProcessed()
	metrics.RecordNATSProcessingDuration(time.Since(start))

	if p.coalescer != nil {
		p.coalescer.Notify()
	}
	return nil
}

// ProcessRaw deserializes and processes a wire payload.
func (p *Processor) ProcessRaw(ctx context.Context, payload []byte) error {
	event, err := DeserializeEvent(payload)
	if err != nil {
		metrics.RecordNATSParseFailed()
		return err
	}
	return p.Process(ctx, event)
}

func (p *Processor) apply(ctx context.Context, event *ContentEvent) error {
	switch event.Kind {
	case KindClipCreated, KindClipUpdated:
		if err := p.store.UpsertClip(ctx, event.Clip); err != nil {
			return fmt.Errorf("apply %s: %w", event.Kind, err)
		}
	case KindClipDeleted:
		if err := p.store.DeleteClip(ctx, event.ClipID); err != nil {
			return fmt.Errorf("apply %s: %w", event.Kind, err)
		}
	case KindTopicUpserted:
		if err := p.store.UpsertTopic(ctx, event.Topic); err != nil {
			return fmt.Errorf("apply %s: %w", event.Kind, err)
		}
	case KindListenRecorded:
		if err := p.store.RecordListen(ctx, event.Listen); err != nil {
			return fmt.Errorf("apply %s: %w", event.Kind, err)
		}
	default:
		return ErrUnknownKind
	}
	return nil
}

// SeenEvents returns the current dedup cache size.
func (p *Processor) SeenEvents() int {
	return p.dedup.Len()
}

// Close stops accepting events.
func (p *Processor) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
