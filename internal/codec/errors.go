package codec

import "errors"

// Decode and encode failures. A document failing with any of these is dropped
// by the download phase and re-fetched on a later pass.
var (
	ErrMissingID         = errors.New("document has no id")
	ErrEmptyBody         = errors.New("document body is empty")
	ErrMalformedDocument = errors.New("malformed document body")
	ErrIDMismatch        = errors.New("document body id does not match envelope")
)
