package service

import (
	"context"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/models"
)

// DefaultJobRetryBase is the first wait after a pass reports retry.
const DefaultJobRetryBase = time.Second

type syncJob struct {
	name      string
	pass      func(ctx context.Context) models.SyncResult
	interval  time.Duration
	retryBase time.Duration

	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewFullSyncJob returns a job running a full pass right away and then
// every interval. A pass reporting retry is re-run sooner, with exponential
// backoff capped at interval.
func NewFullSyncJob(runner SyncRunner, interval time.Duration, log *logger.Logger) SyncJob {
	return newSyncJob("full", runner.RunFullSync, interval, DefaultJobRetryBase, log)
}

// NewScopedSyncJob is the scoped counterpart of [NewFullSyncJob].
func NewScopedSyncJob(runner SyncRunner, groupIDs []string, interval time.Duration, log *logger.Logger) SyncJob {
	groups := append([]string(nil), groupIDs...)
	pass := func(ctx context.Context) models.SyncResult {
		return runner.RunScopedSync(ctx, groups)
	}
	return newSyncJob("scoped", pass, interval, DefaultJobRetryBase, log)
}

func newSyncJob(name string, pass func(context.Context) models.SyncResult, interval, retryBase time.Duration, log *logger.Logger) *syncJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if retryBase <= 0 {
		retryBase = DefaultJobRetryBase
	}
	if log == nil {
		log = logger.Nop()
	}

	return &syncJob{
		name:      name,
		pass:      pass,
		interval:  interval,
		retryBase: retryBase,
		logger:    log,
	}
}

// Start stops any previously running loop and launches a new one bound to
// ctx.
func (j *syncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		j.loop(jobCtx)
	}()
}

// Stop cancels the loop and blocks until it has exited. Safe to call when
// the job is not running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *syncJob) loop(ctx context.Context) {
	log := j.logger.With().Str("job", j.name).Logger()
	backoff := j.newBackoff()

	t := time.NewTimer(0)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}

		wait := j.interval
		result := j.pass(ctx)
		if result == models.SyncResultRetry {
			if d, stop := backoff.Next(); !stop {
				wait = d
			}
			log.Warn().Dur("next_in", wait).Msg("sync pass asked for retry")
		} else {
			backoff = j.newBackoff()
			log.Debug().Dur("next_in", wait).Msg("sync pass done")
		}

		t.Reset(wait)
	}
}

func (j *syncJob) newBackoff() retry.Backoff {
	return retry.WithCappedDuration(j.interval, retry.NewExponential(j.retryBase))
}
