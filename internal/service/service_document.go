package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/internal/store"
	"github.com/MKhiriev/go-chama-sync/models"
)

type documentService struct {
	repository store.DocumentRepository

	logger *logger.Logger
}

// NewDocumentService returns a DocumentService backed by repository and
// decorated by wrappers, applied in order.
func NewDocumentService(repository store.DocumentRepository, log *logger.Logger, wrappers ...DocumentServiceWrapper) DocumentService {
	var svc DocumentService = &documentService{
		repository: repository,
		logger:     log,
	}
	for _, w := range wrappers {
		svc = w.Wrap(svc)
	}
	return svc
}

func (s *documentService) Put(ctx context.Context, collection string, doc models.Document) error {
	log := logger.FromContext(ctx)

	if err := s.repository.Put(ctx, collection, doc); err != nil {
		log.Err(err).
			Str("collection", collection).
			Str("id", doc.ID).
			Msg("document upsert failed")
		return fmt.Errorf("put %s/%s: %w", collection, doc.ID, err)
	}

	return nil
}

func (s *documentService) Query(ctx context.Context, collection string, q models.DocumentQuery) (models.DocumentList, error) {
	log := logger.FromContext(ctx)

	docs, err := s.repository.Query(ctx, collection, q)
	if err != nil {
		log.Err(err).
			Str("collection", collection).
			Int64("updated_after", q.UpdatedAfter).
			Str("group_id", q.GroupID).
			Msg("document query failed")
		return models.DocumentList{}, fmt.Errorf("query %s: %w", collection, err)
	}

	if docs == nil {
		docs = []models.Document{}
	}
	return models.DocumentList{Documents: docs, Length: len(docs)}, nil
}
