package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-chama-sync/internal/app"
	"github.com/MKhiriev/go-chama-sync/internal/service"
	"github.com/MKhiriev/go-chama-sync/internal/store"
)

type errorResponse struct {
	target  error
	status  int
	message string
}

// errorResponses is matched in order; the first errors.Is hit wins.
var errorResponses = []errorResponse{
	{ErrInvalidUpdatedAfter, http.StatusBadRequest, app.MsgInvalidQuery},
	{ErrMissingHash, http.StatusBadRequest, app.MsgIntegrityCheckFailed},
	{ErrHashMismatch, http.StatusBadRequest, app.MsgIntegrityCheckFailed},

	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{service.ErrValidationUnknownCollection, http.StatusNotFound, app.MsgUnknownCollection},
	{service.ErrValidationNoDocumentID, http.StatusBadRequest, app.MsgNoDocumentID},
	{service.ErrValidationIDMismatch, http.StatusBadRequest, app.MsgDocumentIDMismatch},
	{service.ErrValidationNoLastUpdated, http.StatusBadRequest, app.MsgNoLastUpdated},
	{service.ErrValidationInvalidBody, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{service.ErrValidationInvalidQuery, http.StatusBadRequest, app.MsgInvalidQuery},

	{store.ErrUnknownCollection, http.StatusNotFound, app.MsgUnknownCollection},
	{store.ErrDocumentNotSaved, http.StatusInternalServerError, app.MsgDocumentNotSaved},
}

func lookupError(err error) (errorResponse, bool) {
	for _, resp := range errorResponses {
		if errors.Is(err, resp.target) {
			return resp, true
		}
	}
	return errorResponse{}, false
}

func statusFromError(err error) int {
	if resp, ok := lookupError(err); ok {
		return resp.status
	}
	return http.StatusInternalServerError
}

// errorMessage returns the client-facing text for err. Unmapped errors never
// leak their internals.
func errorMessage(err error) string {
	if resp, ok := lookupError(err); ok {
		return resp.message
	}
	return app.MsgInternalServerError
}
