package service

import (
	"context"
	"slices"

	"github.com/MKhiriev/go-chama-sync/internal/codec"
	"github.com/MKhiriev/go-chama-sync/internal/config"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
)

type appInfoService struct {
	appVersion  string
	collections []string

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion:  cfg.Version,
		collections: slices.Clone(codec.SyncOrder),
		logger:      logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// GetCollections returns the collections the server accepts, in sync order.
func (s *appInfoService) GetCollections(ctx context.Context) []string {
	return slices.Clone(s.collections)
}
