package store

import (
	"context"

	"github.com/MKhiriev/go-chama-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// DocumentRepository is the server-side document table.
type DocumentRepository interface {
	// Put upserts the document of collection keyed by its id. The last
	// writer wins; no merge takes place.
	Put(ctx context.Context, collection string, doc models.Document) error
	// Query returns the documents of collection matching q, ordered by
	// lastUpdated then id.
	Query(ctx context.Context, collection string, q models.DocumentQuery) ([]models.Document, error)
}
