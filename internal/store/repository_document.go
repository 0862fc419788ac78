package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/models"
)

// documentRepository is the PostgreSQL-backed implementation of
// [DocumentRepository]. All collections share the "documents" table.
type documentRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewDocumentRepository constructs a [DocumentRepository] over db.
func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	logger.Debug().Msg("creating document repository")
	return &documentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *documentRepository) Put(ctx context.Context, collection string, doc models.Document) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert("documents").
		Columns("collection", "id", "group_id", "last_updated", "body").
		Values(collection, doc.ID, nullString(doc.GroupID), doc.LastUpdated, string(doc.Body)).
		Suffix("ON CONFLICT (collection, id) DO UPDATE SET " +
			"group_id = excluded.group_id, last_updated = excluded.last_updated, body = excluded.body, stored_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.Put").
			Str("collection", collection).
			Str("id", doc.ID).
			Str("pg_code", postgresError(err)).
			Msg("failed to upsert document")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrDocumentNotSaved
	}

	return nil
}

func (r *documentRepository) Query(ctx context.Context, collection string, q models.DocumentQuery) ([]models.Document, error) {
	log := logger.FromContext(ctx)

	where := sq.And{
		sq.Eq{"collection": collection},
		sq.Gt{"last_updated": q.UpdatedAfter},
	}
	if q.GroupID != "" {
		where = append(where, sq.Eq{"group_id": q.GroupID})
	}

	query, args, err := r.db.builder.
		Select("id", "COALESCE(group_id, '')", "last_updated", "body").
		From("documents").
		Where(where).
		OrderBy("last_updated", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.Query").
			Str("collection", collection).
			Msg("failed to query documents")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0)
	for rows.Next() {
		var (
			doc  models.Document
			body []byte
		)
		if err := rows.Scan(&doc.ID, &doc.GroupID, &doc.LastUpdated, &body); err != nil {
			log.Err(err).
				Str("func", "documentRepository.Query").
				Str("collection", collection).
				Msg("failed to scan document row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		doc.Body = body
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return docs, nil
}
