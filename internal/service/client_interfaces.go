package service

import (
	"context"

	"github.com/MKhiriev/go-chama-sync/models"
)

// SyncRunner is the trigger boundary of the sync engine. Both methods are
// idempotent and safe to call concurrently.
type SyncRunner interface {
	// RunFullSync syncs every collection with collection-wide watermarks.
	RunFullSync(ctx context.Context) models.SyncResult

	// RunScopedSync syncs the group-scoped collections of groupIDs with
	// per-group watermarks.
	RunScopedSync(ctx context.Context, groupIDs []string) models.SyncResult
}

// StatusSource exposes the current sync status and its changes.
type StatusSource interface {
	Current() models.SyncStatus
	Subscribe() (<-chan models.SyncStatus, func())
}

// SyncJob is a background worker periodically triggering sync passes.
type SyncJob interface {
	// Start launches the background loop. A running loop is stopped first.
	Start(ctx context.Context)

	// Stop signals the loop to exit and blocks until it has.
	Stop()
}

var (
	_ SyncRunner   = (*Orchestrator)(nil)
	_ StatusSource = (*StatusBroadcaster)(nil)
	_ SyncJob      = (*syncJob)(nil)
)
