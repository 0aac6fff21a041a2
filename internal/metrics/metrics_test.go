// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// getGaugeValue extracts the value from a Prometheus gauge
func getGaugeValue(gauge prometheus.Gauge) float64 {
	var m io_prometheus_client.Metric
	if err := gauge.Write(&m); err != nil {
		return 0
	}
	return m.GetGauge().GetValue()
}

// TestRecordRanking tests ranking metric recording
func TestRecordRanking(t *testing.T) {
	tests := []struct {
		name       string
		mode       string
		candidates int
		duration   time.Duration
		err        error
	}{
		{
			name:       "successful hot pass",
			mode:       "hot",
			candidates: 500,
			duration:   2 * time.Millisecond,
			err:        nil,
		},
		{
			name:       "successful trending pass",
			mode:       "trending",
			candidates: 50,
			duration:   200 * time.Microsecond,
			err:        nil,
		},
		{
			name:       "failed pass",
			mode:       "top",
			candidates: 0,
			duration:   time.Millisecond,
			err:        errors.New("invalid time window"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			okBefore := testutil.ToFloat64(RankingRequestsTotal.WithLabelValues(tt.mode, "ok"))
			errBefore := testutil.ToFloat64(RankingRequestsTotal.WithLabelValues(tt.mode, "error"))

			RecordRanking(tt.mode, tt.candidates, tt.duration, tt.err)

			okAfter := testutil.ToFloat64(RankingRequestsTotal.WithLabelValues(tt.mode, "ok"))
			errAfter := testutil.ToFloat64(RankingRequestsTotal.WithLabelValues(tt.mode, "error"))

			if tt.err == nil {
				if okAfter != okBefore+1 {
					t.Errorf("ok counter = %f, want %f", okAfter, okBefore+1)
				}
				if errAfter != errBefore {
					t.Errorf("error counter moved on success")
				}
			} else {
				if errAfter != errBefore+1 {
					t.Errorf("error counter = %f, want %f", errAfter, errBefore+1)
				}
				if okAfter != okBefore {
					t.Errorf("ok counter moved on failure")
				}
			}
		})
	}
}

// TestRecordCacheAccess tests cache hit/miss recording
func TestRecordCacheAccess(t *testing.T) {
	hitsBefore := testutil.ToFloat64(CacheHits.WithLabelValues("ranking"))
	missesBefore := testutil.ToFloat64(CacheMisses.WithLabelValues("ranking"))

	RecordCacheAccess("ranking", true)
	RecordCacheAccess("ranking", true)
	RecordCacheAccess("ranking", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("ranking")); got != hitsBefore+2 {
		t.Errorf("hits = %f, want %f", got, hitsBefore+2)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("ranking")); got != missesBefore+1 {
		t.Errorf("misses = %f, want %f", got, missesBefore+1)
	}
}

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/feed", "200"))

	RecordAPIRequest("GET", "/api/v1/feed", "200", 15*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/feed", "200"))
	if after != before+1 {
		t.Errorf("counter = %f, want %f", after, before+1)
	}
}

// TestTrackActiveRequest tests the active request gauge
func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("gauge = %f, want %f", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("gauge = %f, want %f", got, before)
	}
}

// TestRecordDBQuery tests store query metric recording
func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		duration  time.Duration
		err       error
	}{
		{
			name:      "successful SELECT query",
			operation: "SELECT",
			table:     "clips",
			duration:  10 * time.Millisecond,
			err:       nil,
		},
		{
			name:      "failed query with short error",
			operation: "INSERT",
			table:     "listen_events",
			duration:  100 * time.Millisecond,
			err:       errors.New("connection refused"),
		},
		{
			name:      "failed query with long error - should truncate to 50 chars",
			operation: "SELECT",
			table:     "topics",
			duration:  50 * time.Millisecond,
			err:       errors.New("this is a very long error message that exceeds fifty characters and should be truncated properly"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Must not panic; error labels are truncated internally.
			RecordDBQuery(tt.operation, tt.table, tt.duration, tt.err)
		})
	}
}

// TestRecordCoalescedRefresh tests coalescing metric recording
func TestRecordCoalescedRefresh(t *testing.T) {
	before := testutil.ToFloat64(CoalescedRefreshes)

	RecordCoalescedRefresh(7)
	RecordCoalescedRefresh(1)

	if got := testutil.ToFloat64(CoalescedRefreshes); got != before+2 {
		t.Errorf("refreshes = %f, want %f", got, before+2)
	}
}

// TestNATSRecorders tests the NATS counter helpers
func TestNATSRecorders(t *testing.T) {
	published := testutil.ToFloat64(NATSMessagesPublished)
	consumed := testutil.ToFloat64(NATSMessagesConsumed)
	processed := testutil.ToFloat64(NATSMessagesProcessed)
	deduped := testutil.ToFloat64(NATSMessagesDeduplicated)
	parseFailed := testutil.ToFloat64(NATSMessagesParseFailed)

	RecordNATSPublish()
	RecordNATSConsume()
	RecordNATSProcessed()
	RecordNATSDeduplicated()
	RecordNATSParseFailed()
	RecordNATSProcessingDuration(5 * time.Millisecond)

	if got := testutil.ToFloat64(NATSMessagesPublished); got != published+1 {
		t.Errorf("published = %f, want %f", got, published+1)
	}
	if got := testutil.ToFloat64(NATSMessagesConsumed); got != consumed+1 {
		t.Errorf("consumed = %f, want %f", got, consumed+1)
	}
	if got := testutil.ToFloat64(NATSMessagesProcessed); got != processed+1 {
		t.Errorf("processed = %f, want %f", got, processed+1)
	}
	if got := testutil.ToFloat64(NATSMessagesDeduplicated); got != deduped+1 {
		t.Errorf("deduplicated = %f, want %f", got, deduped+1)
	}
	if got := testutil.ToFloat64(NATSMessagesParseFailed); got != parseFailed+1 {
		t.Errorf("parse failed = %f, want %f", got, parseFailed+1)
	}
}

// TestRecordSnapshotLoad tests snapshot gauge updates
func TestRecordSnapshotLoad(t *testing.T) {
	RecordSnapshotLoad(100*time.Millisecond, 1234, nil)

	if got := testutil.ToFloat64(SnapshotClips); got != 1234 {
		t.Errorf("snapshot clips = %f, want 1234", got)
	}
	if got := testutil.ToFloat64(SnapshotAge); got != 0 {
		t.Errorf("snapshot age = %f, want 0", got)
	}
	if got := getGaugeValue(SnapshotLastSuccess); got <= 0 {
		t.Errorf("last success timestamp = %f, want > 0", got)
	}

	// Failed loads leave the gauges untouched.
	RecordSnapshotLoad(time.Second, 0, errors.New("store unavailable"))
	if got := testutil.ToFloat64(SnapshotClips); got != 1234 {
		t.Errorf("snapshot clips after failed load = %f, want 1234", got)
	}
}

// TestConcurrentRecording verifies the helpers are safe under concurrency
func TestConcurrentRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				RecordRanking("hot", 100, time.Millisecond, nil)
				RecordCacheAccess("ranking", j%2 == 0)
				TrackActiveRequest(true)
				TrackActiveRequest(false)
			}
		}()
	}
	wg.Wait()
}
