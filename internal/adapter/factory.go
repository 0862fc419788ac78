package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-chama-sync/internal/config"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
)

// NewDocumentStore builds the [DocumentStore] selected by cfg.Backend.
func NewDocumentStore(ctx context.Context, cfg config.Adapter, app config.ClientApp, log *logger.Logger) (DocumentStore, error) {
	log.Info().Str("backend", cfg.Backend).Msg("creating remote document store...")

	switch cfg.Backend {
	case config.BackendHTTP, "":
		return NewHTTPDocumentStore(cfg, app, log)
	case config.BackendRedis:
		return NewRedisDocumentStore(ctx, cfg.Redis, log)
	case config.BackendMinIO:
		return NewMinIODocumentStore(ctx, cfg.MinIO, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
