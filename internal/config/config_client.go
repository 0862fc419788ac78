package config

import (
	"fmt"
	"time"
)

// Client defaults applied by [GetClientConfig] to unset fields.
const (
	DefaultFullSyncInterval   = 5 * time.Minute
	DefaultScopedSyncInterval = 30 * time.Second
	DefaultUploadConcurrency  = 4
	DefaultRetryBaseDelay     = 100 * time.Millisecond
	DefaultRequestTimeout     = 30 * time.Second
	DefaultTokenDuration      = time.Hour
	DefaultTokenIssuer        = "chama-sync"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// HashKey is the HMAC key used by the client for payload integrity checks.
	HashKey string
	// TokenSignKey signs the device bearer token sent to the document server.
	TokenSignKey string
	// TokenIssuer is the issuer claim of the device token.
	TokenIssuer string
	// TokenDuration is the lifetime of a minted device token.
	TokenDuration time.Duration
	// DeviceID is the subject of the device token.
	DeviceID string
	// Version is printed at startup.
	Version string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// Local holds the SQLite datastore and ledger locations.
	Local Local
}

// ClientWorkers contains the sync job settings.
type ClientWorkers struct {
	FullSyncInterval   time.Duration
	ScopedSyncInterval time.Duration
	ScopedGroups       []string
	UploadConcurrency  int
	RetryBaseDelay     time.Duration
	RunOnce            bool
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter selects and configures the remote document store.
	Adapter Adapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
	// Observability contains metrics, tracing and log file settings.
	Observability Observability
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, fills defaults and validates the resulting
// [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps cfg onto a [ClientConfig] and applies client defaults.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	adapter := cfg.Adapter
	if adapter.Backend == "" {
		adapter.Backend = BackendHTTP
	}
	adapter.RequestTimeout = durationOrDefault(adapter.RequestTimeout, DefaultRequestTimeout)

	concurrency := cfg.Workers.UploadConcurrency
	if concurrency <= 0 {
		concurrency = DefaultUploadConcurrency
	}

	return &ClientConfig{
		App: ClientApp{
			HashKey:       cfg.App.HashKey,
			TokenSignKey:  cfg.App.TokenSignKey,
			TokenIssuer:   stringOrDefault(cfg.App.TokenIssuer, DefaultTokenIssuer),
			TokenDuration: durationOrDefault(cfg.App.TokenDuration, DefaultTokenDuration),
			DeviceID:      cfg.App.DeviceID,
			Version:       cfg.App.Version,
		},
		Adapter: adapter,
		Storage: ClientStorage{
			Local: cfg.Storage.Local,
		},
		Workers: ClientWorkers{
			FullSyncInterval:   durationOrDefault(cfg.Workers.FullSyncInterval, DefaultFullSyncInterval),
			ScopedSyncInterval: durationOrDefault(cfg.Workers.ScopedSyncInterval, DefaultScopedSyncInterval),
			ScopedGroups:       cfg.Workers.ScopedGroups,
			UploadConcurrency:  concurrency,
			RetryBaseDelay:     durationOrDefault(cfg.Workers.RetryBaseDelay, DefaultRetryBaseDelay),
			RunOnce:            cfg.Workers.RunOnce,
		},
		Observability: cfg.Observability,
	}
}

func stringOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
