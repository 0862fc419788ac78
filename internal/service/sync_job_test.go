// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/models"
)

// spyRunner считает вызовы и возвращает заданный результат.
type spyRunner struct {
	full   atomic.Int64
	scoped atomic.Int64
	result atomic.Int64

	mu     sync.Mutex
	groups []string
}

func (s *spyRunner) RunFullSync(context.Context) models.SyncResult {
	s.full.Add(1)
	return models.SyncResult(s.result.Load())
}

func (s *spyRunner) RunScopedSync(_ context.Context, groupIDs []string) models.SyncResult {
	s.scoped.Add(1)
	s.mu.Lock()
	s.groups = groupIDs
	s.mu.Unlock()
	return models.SyncResult(s.result.Load())
}

func TestSyncJob_RunsImmediately(t *testing.T) {
	spy := &spyRunner{}
	job := NewFullSyncJob(spy, time.Hour, logger.Nop())

	job.Start(context.Background())
	defer job.Stop()

	require.Eventually(t, func() bool { return spy.full.Load() == 1 }, time.Second, time.Millisecond)
}

func TestSyncJob_RunsEveryInterval(t *testing.T) {
	spy := &spyRunner{}
	job := NewFullSyncJob(spy, 10*time.Millisecond, logger.Nop())

	job.Start(context.Background())
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.full.Load()
	assert.GreaterOrEqual(t, got, int64(3), "FullSync должен быть вызван несколько раз, вызвано: %d", got)
}

func TestSyncJob_RetriesSoonerThanInterval(t *testing.T) {
	spy := &spyRunner{}
	spy.result.Store(int64(models.SyncResultRetry))

	job := newSyncJob("full", spy.RunFullSync, time.Hour, 5*time.Millisecond, logger.Nop())
	job.Start(context.Background())
	defer job.Stop()

	// 5ms, 10ms, 20ms: далеко от часового интервала
	require.Eventually(t, func() bool { return spy.full.Load() >= 3 }, 2*time.Second, time.Millisecond)
}

func TestSyncJob_SuccessWaitsFullInterval(t *testing.T) {
	spy := &spyRunner{}
	job := newSyncJob("full", spy.RunFullSync, time.Hour, time.Millisecond, logger.Nop())

	job.Start(context.Background())
	require.Eventually(t, func() bool { return spy.full.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	job.Stop()

	assert.Equal(t, int64(1), spy.full.Load())
}

func TestSyncJob_StopStopsLoop(t *testing.T) {
	spy := &spyRunner{}
	job := NewFullSyncJob(spy, 5*time.Millisecond, logger.Nop())

	job.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.full.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, callsAfterStop, spy.full.Load(), "после Stop новых вызовов быть не должно")
}

func TestSyncJob_StopBeforeStart(t *testing.T) {
	job := NewFullSyncJob(&spyRunner{}, time.Minute, logger.Nop())
	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_ContextCancelStopsLoop(t *testing.T) {
	spy := &spyRunner{}
	job := NewFullSyncJob(spy, 5*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	job.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after context cancel")
	}
}

func TestSyncJob_RestartReplacesLoop(t *testing.T) {
	spy := &spyRunner{}
	job := NewFullSyncJob(spy, time.Hour, logger.Nop())

	job.Start(context.Background())
	job.Start(context.Background())
	defer job.Stop()

	require.Eventually(t, func() bool { return spy.full.Load() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	assert.LessOrEqual(t, spy.full.Load(), int64(2))
}

func TestScopedSyncJob_PassesGroups(t *testing.T) {
	spy := &spyRunner{}
	groups := []string{"group-7", "group-9"}
	job := NewScopedSyncJob(spy, groups, time.Hour, logger.Nop())

	groups[0] = "mutated"
	job.Start(context.Background())
	defer job.Stop()

	require.Eventually(t, func() bool { return spy.scoped.Load() == 1 }, time.Second, time.Millisecond)
	spy.mu.Lock()
	defer spy.mu.Unlock()
	assert.Equal(t, []string{"group-7", "group-9"}, spy.groups)
	assert.Zero(t, spy.full.Load())
}
