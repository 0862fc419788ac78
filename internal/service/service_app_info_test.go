package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-chama-sync/internal/codec"
	"github.com/MKhiriev/go-chama-sync/internal/config"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/models"
)

func TestNewAppInfoService(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr error
	}{
		{name: "semver", version: "1.4.0"},
		{name: "prerelease with build", version: "v2.0.0-rc.1+chama.7"},
		{name: "missing version", version: "", wantErr: ErrVersionIsNotSpecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(config.App{Version: tt.version}, logger.Nop())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, svc)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.version, svc.GetAppVersion(context.Background()))
		})
	}
}

func TestAppInfoService_VersionIgnoresCancellation(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.4.0"}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "1.4.0", svc.GetAppVersion(ctx))
}

func TestAppInfoService_GetCollections(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.4.0"}, logger.Nop())
	require.NoError(t, err)

	got := svc.GetCollections(context.Background())
	require.Equal(t, codec.SyncOrder, got)
	// родительские коллекции идут раньше зависимых
	assert.Equal(t, models.CollectionUsers, got[0])

	got[0] = "mutated"
	assert.Equal(t, codec.SyncOrder, svc.GetCollections(context.Background()))
}
