// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package services

import (
	"context"
)

// CoalescerRunner is the subset of eventprocessor.Coalescer the service
// needs.
type CoalescerRunner interface {
	Run(ctx context.Context) error
}

// CoalescerService wraps the refresh coalescer as a supervised service.
type CoalescerService struct {
	runner CoalescerRunner
	name   string
}

// NewCoalescerService creates a new coalescer service wrapper.
func NewCoalescerService(runner CoalescerRunner) *CoalescerService {
	return &CoalescerService{
		runner: runner,
		name:   "coalescer-service",
	}
}

// Serve implements the suture.Service interface.
func (s *CoalescerService) Serve(ctx context.Context) error {
	return s.runner.Run(ctx)
}

// String implements fmt.Stringer for suture's log messages.
func (s *CoalescerService) String() string {
	return s.name
}
