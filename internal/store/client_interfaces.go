package store

import (
	"context"

	"github.com/MKhiriev/go-chama-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalCollection is the local datastore boundary of one syncable
// collection.
type LocalCollection[T models.Entity] interface {
	// GetUnsynced returns rows with is_synced = false, oldest first. A
	// non-empty groupID restricts the result to that group.
	GetUnsynced(ctx context.Context, groupID string) ([]T, error)
	// GetByID returns [ErrNotFound] when no row has the id.
	GetByID(ctx context.Context, id string) (T, error)
	Exists(ctx context.Context, id string) (bool, error)
	// Upsert inserts or replaces the row, bookkeeping included. A missing
	// referenced row fails with [ErrReferentialIntegrity].
	Upsert(ctx context.Context, v T) error
	// MarkSynced flags the row as synced if its last_updated still equals
	// lastUpdated, and returns [ErrStaleRow] otherwise.
	MarkSynced(ctx context.Context, id string, lastUpdated int64) error
	// MarkDeleted soft-deletes the row at ts (unix ms).
	MarkDeleted(ctx context.Context, id string, ts int64) error
	GetDeleted(ctx context.Context) ([]T, error)
	PermanentDelete(ctx context.Context, id string) error
}

// ReferenceLookup answers whether an entity is stored locally.
type ReferenceLookup interface {
	Exists(ctx context.Context, collection, id string) (bool, error)
}
