package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-chama-sync/internal/app"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/internal/mock"
	"github.com/MKhiriev/go-chama-sync/internal/service"
	"github.com/MKhiriev/go-chama-sync/internal/utils"
	"github.com/MKhiriev/go-chama-sync/models"
)

// tokenFor maps raw bearer tokens to devices; anything else is rejected.
func tokenFor(devices map[string]string) *mockAuthService {
	return &mockAuthService{parseTokenFn: func(_ context.Context, raw string) (models.Token, error) {
		if id, ok := devices[raw]; ok {
			return models.Token{DeviceID: id}, nil
		}
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}}
}

func serveAuth(h *Handler, header string, next http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/collections/groups/documents", nil)
	req = req.WithContext(h.logger.WithContext(req.Context()))
	if header != "" {
		req.Header.Set("Authorization", header)
	}

	rr := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)
	return rr
}

func TestAuth(t *testing.T) {
	devices := map[string]string{"tok-phone": "phone-1", "tok-tablet": "tablet-9"}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
		wantDevice string
	}{
		{name: "no header", wantStatus: http.StatusUnauthorized, wantBody: ErrEmptyAuthorizationHeader.Error()},
		{name: "scheme only", header: "Bearer", wantStatus: http.StatusUnauthorized, wantBody: utils.ErrInvalidAuthorizationHeader.Error()},
		{name: "basic scheme", header: "Basic cGhvbmU6cGlu", wantStatus: http.StatusUnauthorized, wantBody: utils.ErrInvalidAuthorizationHeader.Error()},
		{name: "unknown token", header: "Bearer tok-stolen", wantStatus: http.StatusUnauthorized, wantBody: app.MsgTokenIsExpiredOrInvalid},
		{name: "phone", header: "Bearer tok-phone", wantStatus: http.StatusOK, wantDevice: "phone-1"},
		// схема без учёта регистра
		{name: "lowercase scheme", header: "bearer tok-tablet", wantStatus: http.StatusOK, wantDevice: "tablet-9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop(), services: &service.Services{AuthService: tokenFor(devices)}}

			var gotDevice string
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotDevice, _ = utils.GetDeviceIDFromContext(r.Context())
			})

			rr := serveAuth(h, tt.header, next)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantDevice != "", called)
			assert.Equal(t, tt.wantDevice, gotDevice)
			if tt.wantBody != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestAuth_SkipsTokenServiceOnMalformedHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	authSvc := mock.NewMockAuthService(ctrl)
	authSvc.EXPECT().ParseToken(gomock.Any(), gomock.Any()).Times(0)

	h := &Handler{logger: logger.Nop(), services: &service.Services{AuthService: authSvc}}

	for _, header := range []string{"", "Token", "Bearer a b"} {
		rr := serveAuth(h, header, http.NotFoundHandler())
		assert.Equal(t, http.StatusUnauthorized, rr.Code, header)
	}
}

func TestAuth_PassesRawTokenToService(t *testing.T) {
	ctrl := gomock.NewController(t)
	authSvc := mock.NewMockAuthService(ctrl)
	authSvc.EXPECT().
		ParseToken(gomock.Any(), "eyJhbGciOiJIUzI1NiJ9.e30.sig").
		Return(models.Token{DeviceID: "phone-1"}, nil)

	h := &Handler{logger: logger.Nop(), services: &service.Services{AuthService: authSvc}}

	rr := serveAuth(h, "Bearer eyJhbGciOiJIUzI1NiJ9.e30.sig", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestAuth_DeviceIDInRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{
		logger:   &logger.Logger{Logger: zerolog.New(&buf)},
		services: &service.Services{AuthService: tokenFor(map[string]string{"tok": "phone-1"})},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("query")
	})

	rr := serveAuth(h, "Bearer tok", next)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "phone-1", lastLogLine(t, &buf)["device_id"])
}

func TestAuth_ConcurrentDevices(t *testing.T) {
	devices := map[string]string{"tok-a": "dev-a", "tok-b": "dev-b"}
	h := &Handler{logger: logger.Nop(), services: &service.Services{AuthService: tokenFor(devices)}}

	var (
		mu   sync.Mutex
		seen = map[string]int{}
		wg   sync.WaitGroup
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := utils.GetDeviceIDFromContext(r.Context())
		mu.Lock()
		seen[id]++
		mu.Unlock()
	})

	for i := 0; i < 40; i++ {
		raw := "tok-a"
		if i%2 == 1 {
			raw = "tok-b"
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			rr := serveAuth(h, "Bearer "+raw, next)
			assert.Equal(t, http.StatusOK, rr.Code)
		}()
	}
	wg.Wait()

	assert.Equal(t, map[string]int{"dev-a": 20, "dev-b": 20}, seen)
}
