package client

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/internal/service"
	"github.com/MKhiriev/go-chama-sync/models"
)

// statusReporter logs every sync status change. It is the headless stand-in
// for a status indicator.
type statusReporter struct {
	source service.StatusSource
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newStatusReporter(source service.StatusSource, log *logger.Logger) *statusReporter {
	return &statusReporter{source: source, logger: log}
}

func (s *statusReporter) Start(ctx context.Context) {
	s.Stop()

	s.mu.Lock()
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	updates, unsubscribe := s.source.Subscribe()
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer unsubscribe()

		for {
			select {
			case <-ctx.Done():
				return
			case status, ok := <-updates:
				if !ok {
					return
				}
				s.report(status)
			}
		}
	}()
}

func (s *statusReporter) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *statusReporter) report(status models.SyncStatus) {
	switch status.State {
	case models.SyncStateFailed:
		s.logger.Warn().Stringer("state", status.State).Str("message", status.Message).Msg("sync status")
	case models.SyncStateInProgressWithProgress:
		s.logger.Debug().Stringer("state", status.State).
			Int("current", status.Current).
			Int("total", status.Total).
			Msg("sync status")
	case models.SyncStateSuccess:
		s.logger.Info().Stringer("state", status.State).Time("at", status.At).Msg("sync status")
	default:
		s.logger.Info().Stringer("state", status.State).Msg("sync status")
	}
}
