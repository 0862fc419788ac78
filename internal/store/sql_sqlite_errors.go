package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// SQLiteErrorClassifier implements [ErrorClassificator] for the local
// datastore.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify maps foreign key violations to [ReferentialIntegrity], other
// constraint failures to [ConstraintViolation] and lock contention to
// [Retryable].
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return NonRetryable
	}

	if sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
		return ReferentialIntegrity
	}

	switch sqliteErr.Code {
	case sqlite3.ErrConstraint:
		return ConstraintViolation
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return Retryable
	}

	return NonRetryable
}

// classify wraps a failed write with [ErrReferentialIntegrity] or
// [ErrConstraintViolation] when the connection's classifier reports one.
func (db *DB) classify(err error) error {
	if err == nil || db.errorClassificator == nil {
		return err
	}

	switch db.errorClassificator.Classify(err) {
	case ReferentialIntegrity:
		return fmt.Errorf("%w: %w", ErrReferentialIntegrity, err)
	case ConstraintViolation:
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}

	return err
}
