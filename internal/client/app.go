package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-chama-sync/internal/adapter"
	"github.com/MKhiriev/go-chama-sync/internal/config"
	"github.com/MKhiriev/go-chama-sync/internal/ledger"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/internal/observability"
	"github.com/MKhiriev/go-chama-sync/internal/service"
	"github.com/MKhiriev/go-chama-sync/internal/store"
	"github.com/MKhiriev/go-chama-sync/internal/utils"
	"github.com/MKhiriev/go-chama-sync/internal/workers"
	"github.com/MKhiriev/go-chama-sync/models"
)

const (
	serviceName = "chama-sync-client"

	telemetryShutdownTimeout = 5 * time.Second
)

// ErrRetryRequested is returned by a one-shot run whose pass reported retry.
var ErrRetryRequested = errors.New("sync pass requested retry")

type App struct {
	cfg *config.ClientConfig

	storages *store.ClientStorages
	ledger   *ledger.BoltLedger
	remote   adapter.DocumentStore
	services *service.ClientServices
	workers  *workers.Workers

	shutdownTelemetry observability.ShutdownFunc

	logger *logger.Logger
}

// NewApp opens the local datastore and the ledger, connects to the remote
// document store and builds the sync engine. Everything opened so far is
// closed again when a later step fails.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	cfg.App.DeviceID = resolveDeviceID(cfg.App.DeviceID)
	log.Info().
		Str("device_id", cfg.App.DeviceID).
		Str("backend", cfg.Adapter.Backend).
		Str("version", cfg.App.Version).
		Msg("creating client app...")

	shutdownTelemetry, err := observability.Start(ctx, observability.FromConfig(serviceName, cfg.Observability), log)
	if err != nil {
		return nil, fmt.Errorf("start telemetry: %w", err)
	}
	observability.RegisterRuntimeCollectors()

	app := &App{cfg: cfg, shutdownTelemetry: shutdownTelemetry, logger: log}

	app.storages, err = store.NewClientStorages(ctx, cfg.Storage.Local, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("create local storages: %w", err)
	}

	app.ledger, err = ledger.Open(cfg.Storage.Local.LedgerPath)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	app.remote, err = adapter.NewDocumentStore(ctx, cfg.Adapter, cfg.App, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("create remote document store: %w", err)
	}

	app.services = service.NewClientServices(app.storages, app.remote, app.ledger, cfg.Workers, log)
	app.workers = workers.New(
		newStatusReporter(app.services.Status, log),
		app.services.FullSyncJob,
		app.services.ScopedSyncJob,
	)

	return app, nil
}

// Run starts the sync jobs and blocks until ctx is done. With RunOnce set it
// runs a single pass instead and returns [ErrRetryRequested] when that pass
// asked for a retry.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Workers.RunOnce {
		if result := a.RunOnce(ctx); result == models.SyncResultRetry {
			return ErrRetryRequested
		}
		return nil
	}

	a.logger.Info().Int("workers", a.workers.Len()).Msg("starting sync workers")
	a.workers.Start(ctx)

	<-ctx.Done()

	a.logger.Info().Msg("stopping sync workers")
	a.workers.Stop()

	return nil
}

// RunOnce runs one scoped pass over the configured groups, or a full pass
// when none are configured.
func (a *App) RunOnce(ctx context.Context) models.SyncResult {
	var result models.SyncResult
	if groups := a.cfg.Workers.ScopedGroups; len(groups) > 0 {
		result = a.services.Orchestrator.RunScopedSync(ctx, groups)
	} else {
		result = a.services.Orchestrator.RunFullSync(ctx)
	}

	status := a.services.Status.Current()
	a.logger.Info().
		Stringer("result", result).
		Stringer("state", status.State).
		Str("message", status.Message).
		Msg("single sync pass finished")

	return result
}

// Status exposes the sync status of the engine.
func (a *App) Status() service.StatusSource {
	return a.services.Status
}

// Close releases everything NewApp opened. It is safe on a partially built
// App.
func (a *App) Close() error {
	var errs []error

	if a.remote != nil {
		errs = append(errs, a.remote.Close())
	}
	if a.ledger != nil {
		errs = append(errs, a.ledger.Close())
	}
	if a.storages != nil {
		errs = append(errs, a.storages.Close())
	}
	if a.shutdownTelemetry != nil {
		ctx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		errs = append(errs, a.shutdownTelemetry(ctx))
		cancel()
	}

	return errors.Join(errs...)
}

// resolveDeviceID returns configured, else the host name, else a random
// UUID.
func resolveDeviceID(configured string) string {
	if configured != "" {
		return configured
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return utils.NewUUIDGenerator().Generate()
}
