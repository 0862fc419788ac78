package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-chama-sync/internal/config"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/internal/utils"
)

func TestAuthService_ParseToken(t *testing.T) {
	cfg := config.App{TokenSignKey: "sign-key", TokenIssuer: "chama-sync"}
	svc := NewAuthService(cfg, logger.Nop())

	valid, err := utils.GenerateJWTToken("chama-sync", "device-1", time.Hour, "sign-key")
	require.NoError(t, err)
	expired, err := utils.GenerateJWTToken("chama-sync", "device-1", -time.Hour, "sign-key")
	require.NoError(t, err)
	otherKey, err := utils.GenerateJWTToken("chama-sync", "device-1", time.Hour, "other-key")
	require.NoError(t, err)
	otherIssuer, err := utils.GenerateJWTToken("someone-else", "device-1", time.Hour, "sign-key")
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{name: "valid", token: valid.SignedString},
		{name: "expired", token: expired.SignedString, wantErr: true},
		{name: "wrong key", token: otherKey.SignedString, wantErr: true},
		{name: "wrong issuer", token: otherIssuer.SignedString, wantErr: true},
		{name: "garbage", token: "not.a.jwt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.ParseToken(testContext(), tt.token)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrTokenIsExpiredOrInvalid))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "device-1", token.DeviceID)
		})
	}
}
