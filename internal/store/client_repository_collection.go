package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-chama-sync/internal/codec"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/models"
)

var baseColumns = []string{"id", "last_updated", "is_synced", "is_deleted", "deleted_at", "payload"}

// collectionRepository stores entities of one collection in a table of the
// same name. Bookkeeping and foreign keys live in columns; the entity itself
// is kept as a JSON payload.
type collectionRepository[T models.Entity] struct {
	db     *DB
	codec  codec.Codec[T]
	table  string
	logger *logger.Logger
}

// NewCollectionRepository constructs the [LocalCollection] of c.Collection.
func NewCollectionRepository[T models.Entity](db *DB, c codec.Codec[T], log *logger.Logger) LocalCollection[T] {
	return &collectionRepository[T]{
		db:     db,
		codec:  c,
		table:  quoteIdent(c.Collection),
		logger: log,
	}
}

func (r *collectionRepository[T]) GetUnsynced(ctx context.Context, groupID string) ([]T, error) {
	where := sq.Eq{"is_synced": false}
	if groupID != "" {
		where["group_id"] = groupID
	}

	items, err := r.list(ctx, where)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "collectionRepository.GetUnsynced").
			Str("collection", r.codec.Collection).
			Str("group_id", groupID).
			Msg("failed to get unsynced rows")
		return nil, err
	}

	return items, nil
}

func (r *collectionRepository[T]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T

	query, args, err := r.db.builder.
		Select(baseColumns...).
		From(r.table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	item, err := r.scan(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, fmt.Errorf("%s %s: %w", r.codec.Collection, id, ErrNotFound)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "collectionRepository.GetByID").
			Str("collection", r.codec.Collection).
			Str("id", id).
			Msg("failed to get row")
		return zero, err
	}

	return item, nil
}

func (r *collectionRepository[T]) Exists(ctx context.Context, id string) (bool, error) {
	return r.db.existsIn(ctx, r.codec.Collection, id)
}

func (r *collectionRepository[T]) Upsert(ctx context.Context, v T) error {
	log := logger.FromContext(ctx)
	meta := v.Meta()

	if meta.ID == "" {
		return fmt.Errorf("%s: %w", r.codec.Collection, codec.ErrMissingID)
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s %s: encode payload: %w", r.codec.Collection, meta.ID, err)
	}

	columns := []string{"id", "group_id", "last_updated", "is_synced", "is_deleted", "deleted_at", "payload"}
	values := []any{
		meta.ID,
		nullString(r.codec.Group(v)),
		meta.LastUpdated,
		meta.IsSynced,
		meta.IsDeleted,
		meta.DeletedAt,
		string(payload),
	}
	for _, ref := range r.codec.References(v) {
		if ref.Column == "group_id" {
			continue
		}
		columns = append(columns, ref.Column)
		values = append(values, nullString(ref.ID))
	}

	query, args, err := r.db.builder.
		Insert(r.table).
		Columns(columns...).
		Values(values...).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + excludedAssignments(columns[1:])).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		err = r.db.classify(err)
		log.Err(err).
			Str("func", "collectionRepository.Upsert").
			Str("collection", r.codec.Collection).
			Str("id", meta.ID).
			Msg("failed to upsert row")
		return fmt.Errorf("%w: %s %s: %w", ErrExecutingStatement, r.codec.Collection, meta.ID, err)
	}

	return nil
}

func (r *collectionRepository[T]) MarkSynced(ctx context.Context, id string, lastUpdated int64) error {
	query, args, err := r.db.builder.
		Update(r.table).
		Set("is_synced", true).
		Where(sq.Eq{"id": id, "last_updated": lastUpdated}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.exec(ctx, "collectionRepository.MarkSynced", id, query, args)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%s %s: %w", r.codec.Collection, id, ErrStaleRow)
	}

	return nil
}

func (r *collectionRepository[T]) MarkDeleted(ctx context.Context, id string, ts int64) error {
	if !r.codec.SoftDelete {
		return fmt.Errorf("%s: %w", r.codec.Collection, ErrSoftDeleteUnsupported)
	}

	query, args, err := r.db.builder.
		Update(r.table).
		SetMap(map[string]any{
			"is_deleted":   true,
			"deleted_at":   ts,
			"last_updated": ts,
			"is_synced":    false,
		}).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.exec(ctx, "collectionRepository.MarkDeleted", id, query, args)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%s %s: %w", r.codec.Collection, id, ErrNotFound)
	}

	return nil
}

func (r *collectionRepository[T]) GetDeleted(ctx context.Context) ([]T, error) {
	if !r.codec.SoftDelete {
		return nil, fmt.Errorf("%s: %w", r.codec.Collection, ErrSoftDeleteUnsupported)
	}

	return r.list(ctx, sq.Eq{"is_deleted": true})
}

func (r *collectionRepository[T]) PermanentDelete(ctx context.Context, id string) error {
	query, args, err := r.db.builder.
		Delete(r.table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	_, err = r.exec(ctx, "collectionRepository.PermanentDelete", id, query, args)
	return err
}

func (r *collectionRepository[T]) exec(ctx context.Context, fn, id, query string, args []any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		err = r.db.classify(err)
		logger.FromContext(ctx).Err(err).
			Str("func", fn).
			Str("collection", r.codec.Collection).
			Str("id", id).
			Msg("failed to execute statement")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

func (r *collectionRepository[T]) list(ctx context.Context, where sq.Sqlizer) ([]T, error) {
	query, args, err := r.db.builder.
		Select(baseColumns...).
		From(r.table).
		Where(where).
		OrderBy("last_updated", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		item, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *collectionRepository[T]) scan(row scanner) (T, error) {
	var (
		v         T
		meta      models.SyncMeta
		deletedAt sql.NullInt64
		payload   string
	)

	err := row.Scan(&meta.ID, &meta.LastUpdated, &meta.IsSynced, &meta.IsDeleted, &deletedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return v, err
	}
	if err != nil {
		return v, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return v, fmt.Errorf("%w: %s %s: %w", ErrDecodingPayload, r.codec.Collection, meta.ID, err)
	}

	if deletedAt.Valid {
		ts := deletedAt.Int64
		meta.DeletedAt = &ts
	}

	return models.WithMeta(v, meta), nil
}

func excludedAssignments(columns []string) string {
	sets := make([]string, len(columns))
	for i, c := range columns {
		sets[i] = c + " = excluded." + c
	}
	return strings.Join(sets, ", ")
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
