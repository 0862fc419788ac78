package adapter

import "errors"

// Errors mapped from remote responses. Any of them fails the current
// collection of a pass; none is fatal to the process.
var (
	ErrBadRequest          = errors.New("remote rejected the request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("access forbidden")
	ErrNotFound            = errors.New("remote resource not found")
	ErrConflict            = errors.New("remote conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("remote internal error")
	ErrUnavailable         = errors.New("remote store unavailable")
)

// Construction and document errors.
var (
	ErrUnknownBackend  = errors.New("unknown remote backend")
	ErrInvalidDocument = errors.New("invalid document")
	ErrInvalidAddress  = errors.New("invalid remote address")
)
