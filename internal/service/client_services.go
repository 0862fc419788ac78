package service

import (
	"github.com/MKhiriev/go-chama-sync/internal/adapter"
	"github.com/MKhiriev/go-chama-sync/internal/config"
	"github.com/MKhiriev/go-chama-sync/internal/ledger"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/internal/store"
)

// ClientServices groups the sync engine of the client.
type ClientServices struct {
	Orchestrator *Orchestrator
	Status       *StatusBroadcaster
	FullSyncJob  SyncJob
	// ScopedSyncJob is nil when no scoped groups are configured.
	ScopedSyncJob SyncJob
}

func NewClientServices(stores *store.ClientStorages, remote adapter.DocumentStore, l ledger.Ledger, cfg config.ClientWorkers, log *logger.Logger) *ClientServices {
	status := NewStatusBroadcaster()
	orchestrator := NewOrchestrator(stores, SyncerDeps{
		Remote:            remote,
		Ledger:            l,
		Retry:             NewRetryPolicy(DefaultRetryAttempts, cfg.RetryBaseDelay),
		UploadConcurrency: cfg.UploadConcurrency,
		Logger:            log,
	}, status, log)

	services := &ClientServices{
		Orchestrator: orchestrator,
		Status:       status,
		FullSyncJob:  NewFullSyncJob(orchestrator, cfg.FullSyncInterval, log),
	}
	if len(cfg.ScopedGroups) > 0 {
		services.ScopedSyncJob = NewScopedSyncJob(orchestrator, cfg.ScopedGroups, cfg.ScopedSyncInterval, log)
	}

	return services
}
