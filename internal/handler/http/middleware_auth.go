package http

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-chama-sync/internal/app"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/internal/utils"
)

// auth admits requests carrying a valid device token. The device id from the
// token is stored under utils.DeviceIDCtxKey and added to the request logger.
// Missing, malformed, expired or foreign tokens get 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		header := r.Header.Get("Authorization")
		if header == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		raw, err := utils.ParseBearerToken(header)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, raw)
		if err != nil {
			log.Err(err).Msg("device token rejected")
			http.Error(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		deviceLog := log.GetChildLogger()
		deviceLog.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("device_id", token.DeviceID)
		})

		ctx = context.WithValue(ctx, utils.DeviceIDCtxKey, token.DeviceID)
		next.ServeHTTP(w, r.WithContext(deviceLog.WithContext(ctx)))
	})
}
