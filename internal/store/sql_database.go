package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/migrations"
)

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// DB is an open database connection together with the driver specific error
// classifier and statement builder.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	builder            sq.StatementBuilderType
	dialect            dialect
	logger             *logger.Logger
}

// Migrate applies the schema matching the connection dialect.
func (db *DB) Migrate() error {
	if db.dialect == dialectPostgres {
		return migrations.MigrateRemote(db.DB)
	}
	return migrations.MigrateLocal(db.DB)
}

// existsIn reports whether table holds a row with the given id, soft-deleted
// rows included.
func (db *DB) existsIn(ctx context.Context, table, id string) (bool, error) {
	query, args, err := db.builder.
		Select("1").
		From(quoteIdent(table)).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = db.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false, nil
	case err != nil:
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return true, nil
}

func quoteIdent(name string) string {
	return `"` + name + `"`
}
