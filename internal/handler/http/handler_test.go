package http

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-chama-sync/internal/config"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/internal/service"
	"github.com/MKhiriev/go-chama-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mocks
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for testing.
type mockAuthService struct {
	parseTokenFn func(ctx context.Context, s string) (models.Token, error)
}

func (m *mockAuthService) ParseToken(ctx context.Context, s string) (models.Token, error) {
	return m.parseTokenFn(ctx, s)
}

// mockAppInfoService implements service.AppInfoService for testing.
type mockAppInfoService struct {
	version     string
	collections []string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

func (m *mockAppInfoService) GetCollections(_ context.Context) []string {
	return m.collections
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_ReturnsNonNil(t *testing.T) {
	h := NewHandler(&service.Services{}, config.App{}, logger.Nop())

	require.NotNil(t, h)
}

func TestNewHandler_StoresServices(t *testing.T) {
	svc := &service.Services{}
	h := NewHandler(svc, config.App{}, logger.Nop())

	assert.Equal(t, svc, h.services)
}

func TestNewHandler_StoresLogger(t *testing.T) {
	log := logger.Nop()
	h := NewHandler(&service.Services{}, config.App{}, log)

	assert.Equal(t, log, h.logger)
}

func TestNewHandler_Hasher(t *testing.T) {
	tests := []struct {
		name       string
		hashKey    string
		wantHasher bool
	}{
		{name: "no hash key", hashKey: "", wantHasher: false},
		{name: "hash key configured", hashKey: "secret", wantHasher: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&service.Services{}, config.App{HashKey: tt.hashKey}, logger.Nop())

			assert.Equal(t, tt.wantHasher, h.hasher != nil)
		})
	}
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	h1 := NewHandler(&service.Services{}, config.App{}, logger.Nop())
	h2 := NewHandler(&service.Services{}, config.App{}, logger.Nop())

	assert.NotSame(t, h1, h2)
}
