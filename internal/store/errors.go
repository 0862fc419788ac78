package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when no row with the requested id exists.
	ErrNotFound = errors.New("entity not found")

	// ErrReferentialIntegrity is returned when a write violates a foreign
	// key: the row references an entity that is not stored yet. It is the
	// only local write failure the sync engine retries.
	ErrReferentialIntegrity = errors.New("referential integrity violation")

	// ErrConstraintViolation is returned when a write breaks a check, not
	// null or unique constraint. Retrying the same row cannot succeed.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrStaleRow is returned by MarkSynced when the row was modified after
	// it was read for upload. The row stays unsynced.
	ErrStaleRow = errors.New("row changed since it was read")

	// ErrSoftDeleteUnsupported is returned by soft-delete operations of
	// collections whose rows are never soft-deleted.
	ErrSoftDeleteUnsupported = errors.New("collection does not support soft delete")

	// ErrUnknownCollection is returned for a collection name outside the
	// sync order.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrDocumentNotSaved is returned when a document upsert affects no rows.
	ErrDocumentNotSaved = errors.New("document was not saved")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrDecodingPayload is returned when a stored payload cannot be
	// decoded into its entity.
	ErrDecodingPayload = errors.New("failed to decode stored payload")
)
