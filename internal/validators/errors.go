package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyID             = errors.New("document id is required")
	ErrInvalidID           = errors.New("invalid document id")
	ErrInvalidLastUpdated  = errors.New("lastUpdated must be positive")
	ErrInvalidBody         = errors.New("body must be a json object")
	ErrBodyIDMismatch      = errors.New("body id differs from document id")
	ErrInvalidUpdatedAfter = errors.New("updatedAfter must not be negative")
	ErrInvalidGroupID      = errors.New("invalid group id")
)
