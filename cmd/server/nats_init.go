// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

//go:build nats

package main

import (
	"context"
	"fmt"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/melloom/Vocalix-sub005/internal/config"
	"github.com/melloom/Vocalix-sub005/internal/eventprocessor"
	"github.com/melloom/Vocalix-sub005/internal/logging"
	"github.com/melloom/Vocalix-sub005/internal/supervisor"
)

// natsComponents holds the NATS-side resources for shutdown.
type natsComponents struct {
	server      *eventprocessor.EmbeddedServer
	conn        *natsgo.Conn
	streamInit  *eventprocessor.StreamInitializer
	subscribers []*eventprocessor.Subscriber
}

// Health reports whether the content-event stream is reachable.
func (c *natsComponents) Health(ctx context.Context) bool {
	return c.streamInit != nil && c.streamInit.IsHealthy(ctx)
}

// initNATS wires content-event ingestion when cfg.NATS.Enabled: an
// embedded or external JetStream server, the CONTENT_EVENTS stream, and
// one supervised consumer per subject family feeding the processor.
func initNATS(cfg *config.Config, processor *eventprocessor.Processor, tree *supervisor.Tree) (*natsComponents, error) {
	if !cfg.NATS.Enabled {
		logging.Info().Msg("NATS event processing disabled")
		return nil, nil
	}

	components := &natsComponents{}

	natsURL := cfg.NATS.URL
	if cfg.NATS.EmbeddedServer {
		serverCfg := eventprocessor.DefaultServerConfig()
		serverCfg.StoreDir = cfg.NATS.StoreDir

		server, err := eventprocessor.NewEmbeddedServer(&serverCfg)
		if err != nil {
			return nil, fmt.Errorf("start embedded NATS server: %w", err)
		}
		components.server = server
		natsURL = server.ClientURL()
		logging.Info().Str("url", natsURL).Msg("Embedded NATS server started")
	}

	nc, err := natsgo.Connect(natsURL,
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2*time.Second),
	)
	if err != nil {
		components.Shutdown(context.Background())
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	components.conn = nc

	js, err := jetstream.New(nc)
	if err != nil {
		components.Shutdown(context.Background())
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	streamCfg := eventprocessor.DefaultStreamConfig()
	streamInit, err := eventprocessor.NewStreamInitializer(js, &streamCfg)
	if err != nil {
		components.Shutdown(context.Background())
		return nil, fmt.Errorf("create stream initializer: %w", err)
	}
	components.streamInit = streamInit
	if _, err := streamInit.EnsureStream(context.Background()); err != nil {
		components.Shutdown(context.Background())
		return nil, fmt.Errorf("ensure stream: %w", err)
	}
	logging.Info().
		Str("stream", streamCfg.Name).
		Strs("subjects", streamCfg.Subjects).
		Msg("JetStream stream ready")

	// One durable consumer per subject family; each is its own suture
	// service so a poisoned consumer restarts alone.
	for _, topic := range streamCfg.Subjects {
		subCfg := eventprocessor.DefaultSubscriberConfig(natsURL)
		subCfg.DurableName = cfg.NATS.DurableName
		subCfg.QueueGroup = cfg.NATS.QueueGroup
		subCfg.SubscribersCount = cfg.NATS.Subscribers
		subCfg.StreamName = streamCfg.Name

		sub, err := eventprocessor.NewSubscriber(&subCfg, nil)
		if err != nil {
			components.Shutdown(context.Background())
			return nil, fmt.Errorf("create subscriber for %s: %w", topic, err)
		}
		components.subscribers = append(components.subscribers, sub)

		tree.AddEventService(&consumerService{
			topic:     topic,
			sub:       sub,
			processor: processor,
		})
	}

	logging.Info().Int("consumers", len(components.subscribers)).Msg("NATS event processing initialized")
	return components, nil
}

// Shutdown closes consumers, the connection, and the embedded server.
func (c *natsComponents) Shutdown(ctx context.Context) {
	for _, sub := range c.subscribers {
		if err := sub.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing NATS subscriber")
		}
	}
	if c.conn != nil {
		c.conn.Close()
	}
	if c.server != nil {
		if err := c.server.Shutdown(ctx); err != nil {
			logging.Error().Err(err).Msg("Error shutting down embedded NATS server")
		}
	}
}

// consumerService adapts one subscriber topic loop to a suture service.
type consumerService struct {
	topic     string
	sub       *eventprocessor.Subscriber
	processor *eventprocessor.Processor
}

func (s *consumerService) Serve(ctx context.Context) error {
	return s.sub.RunProcessor(ctx, s.topic, s.processor)
}

func (s *consumerService) String() string {
	return "nats-consumer-" + s.topic
}
