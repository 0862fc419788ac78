package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-chama-sync/internal/app"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
)

// hashHeader carries the hex HMAC-SHA256 of the request body.
const hashHeader = "HashSHA256"

// bodyHashing verifies the HashSHA256 header against the raw request body.
// With no hash key configured every body is accepted.
func (h *Handler) bodyHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.bodyHashing").Msg("failed to read request body")
			http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		if h.hasher == nil {
			next.ServeHTTP(w, r)
			return
		}

		expected := r.Header.Get(hashHeader)
		if expected == "" {
			log.Err(ErrMissingHash).Str("func", "*Handler.bodyHashing").Send()
			http.Error(w, app.MsgIntegrityCheckFailed, http.StatusBadRequest)
			return
		}

		if !h.hasher.Verify(body, expected) {
			log.Err(ErrHashMismatch).Str("func", "*Handler.bodyHashing").
				Str("hash from request", expected).
				Msg("hashes are not equal")
			http.Error(w, app.MsgIntegrityCheckFailed, http.StatusBadRequest)
			return
		}

		log.Debug().Str("func", "*Handler.bodyHashing").Msg("hashes are equal")

		next.ServeHTTP(w, r)
	})
}
