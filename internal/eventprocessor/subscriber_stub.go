// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

//go:build !nats

package eventprocessor

import (
	"context"
)

// Subscriber is a stub when NATS dependencies are not compiled in.
// Build with -tags=nats for full Watermill subscriber support.
type Subscriber struct{}

// NewSubscriber returns an error when NATS support is not compiled in.
func NewSubscriber(cfg *SubscriberConfig, logger interface{}) (*Subscriber, error) {
	return nil, ErrNATSDisabled
}

// Subscribe is a stub that returns an error.
func (s *Subscriber) Subscribe(ctx context.Context, topic string) (<-chan interface{}, error) {
	return nil, ErrNATSDisabled
}

// Close is a no-op stub.
func (s *Subscriber) Close() error {
	return nil
}

// RunProcessor is a stub that returns an error.
func (s *Subscriber) RunProcessor(ctx context.Context, topic string, processor *Processor) error {
	return ErrNATSDisabled
}
