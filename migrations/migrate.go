// Package migrations holds the embedded goose migrations of the local
// SQLite datastore and of the server documents table.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed local/*.sql
var localMigrations embed.FS

//go:embed remote/*.sql
var remoteMigrations embed.FS

var errNilDB = errors.New("migration error: db is nil")

// MigrateLocal applies the client schema to a SQLite database.
func MigrateLocal(db *sql.DB) error {
	return migrate(db, localMigrations, "sqlite3", "local")
}

// MigrateRemote applies the server schema to a PostgreSQL database.
func MigrateRemote(db *sql.DB) error {
	return migrate(db, remoteMigrations, "pgx", "remote")
}

func migrate(db *sql.DB, fsys embed.FS, dialect, dir string) error {
	if db == nil {
		return errNilDB
	}

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
