package service

import "errors"

var (
	ErrVersionIsNotSpecified   = errors.New("application version is not specified")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrValidationUnknownCollection = errors.New("unknown collection")
	ErrValidationNoDocumentID      = errors.New("no document id provided")
	ErrValidationIDMismatch        = errors.New("document body id does not match its path")
	ErrValidationNoLastUpdated     = errors.New("document has no lastUpdated")
	ErrValidationInvalidBody       = errors.New("document body is not a json object")
	ErrValidationInvalidQuery      = errors.New("invalid document query")

	// ErrSyncPanicked wraps a panic recovered while syncing one collection
	// or uploading one row.
	ErrSyncPanicked = errors.New("sync panicked")
)
