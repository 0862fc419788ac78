package service

import (
	"context"

	"github.com/MKhiriev/go-chama-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// DocumentService is the document server's view of the remote store.
type DocumentService interface {
	// Put upserts doc into collection. The last writer wins.
	Put(ctx context.Context, collection string, doc models.Document) error
	// Query returns the documents of collection newer than q.UpdatedAfter,
	// oldest first.
	Query(ctx context.Context, collection string, q models.DocumentQuery) (models.DocumentList, error)
}

type AuthService interface {
	// ParseToken validates a device bearer token.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetCollections(ctx context.Context) []string
}

// DocumentServiceWrapper decorates a DocumentService with additional
// behavior such as validation.
type DocumentServiceWrapper interface {
	Wrap(DocumentService) DocumentService
}
