// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// sync client and the reference document server. It is populated by merging
// values from environment variables, command-line flags, and an optional JSON
// file.
//
// Struct tags:
//   - envPrefix - prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       - direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as signing keys and the
	// application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local embedded datastore, the
	// watermark ledger and the server database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the document
	// server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter selects and configures the remote document store used by the
	// client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the sync job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Observability holds metrics, tracing and log file settings.
	Observability Observability `envPrefix:"OBSERVABILITY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the server PostgreSQL connection settings.
	DB DB `envPrefix:"DB_"`

	// Local holds the client-side SQLite and ledger locations.
	Local Local `envPrefix:"LOCAL_"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a device token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// HashKey is the HMAC key used for request integrity checking
	// (the HashSHA256 header).
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// DeviceID identifies this client installation in issued tokens.
	// Env: APP_DEVICE_ID
	DeviceID string `env:"DEVICE_ID"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the document server.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the server database.
type DB struct {
	// DSN is the PostgreSQL Data Source Name.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Local holds the client-side persistence locations.
type Local struct {
	// DSN is the SQLite database file of the local datastore.
	// Env: STORAGE_LOCAL_DSN
	DSN string `env:"DSN"`

	// LedgerPath is the bbolt file holding sync watermarks.
	// Env: STORAGE_LOCAL_LEDGER_PATH
	LedgerPath string `env:"LEDGER_PATH"`
}

// Remote document store backends.
const (
	BackendHTTP  = "http"
	BackendRedis = "redis"
	BackendMinIO = "minio"
)

// Adapter configures the remote document store.
type Adapter struct {
	// Backend is one of "http", "redis" or "minio".
	// Env: ADAPTER_BACKEND
	Backend string `env:"BACKEND"`

	// HTTPAddress is the base address of the document server.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	Redis Redis `envPrefix:"REDIS_"`
	MinIO MinIO `envPrefix:"MINIO_"`
}

// Redis holds the connection settings of the Redis document backend.
type Redis struct {
	Address  string `env:"ADDRESS"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"`
}

// MinIO holds the connection settings of the S3-compatible document backend.
type MinIO struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET"`
	UseSSL    bool   `env:"USE_SSL"`
}

// Workers holds the sync job settings.
type Workers struct {
	// FullSyncInterval is the period of the full sync job.
	// Env: WORKERS_FULL_SYNC_INTERVAL
	FullSyncInterval time.Duration `env:"FULL_SYNC_INTERVAL"`

	// ScopedSyncInterval is the period of the scoped sync job.
	// Env: WORKERS_SCOPED_SYNC_INTERVAL
	ScopedSyncInterval time.Duration `env:"SCOPED_SYNC_INTERVAL"`

	// ScopedGroups lists the groups synced by the scoped job. The scoped job
	// is disabled when empty.
	// Env: WORKERS_SCOPED_GROUPS (comma separated)
	ScopedGroups []string `env:"SCOPED_GROUPS" envSeparator:","`

	// UploadConcurrency bounds the number of in-flight remote writes during
	// the upload phase.
	// Env: WORKERS_UPLOAD_CONCURRENCY
	UploadConcurrency int `env:"UPLOAD_CONCURRENCY"`

	// RetryBaseDelay is the first delay of the referential-integrity retry.
	// Env: WORKERS_RETRY_BASE_DELAY
	RetryBaseDelay time.Duration `env:"RETRY_BASE_DELAY"`

	// RunOnce makes the client run a single pass and exit.
	// Env: WORKERS_RUN_ONCE
	RunOnce bool `env:"RUN_ONCE"`
}

// Observability holds metrics, tracing and log output settings.
type Observability struct {
	// MetricsAddress serves /metrics when non-empty.
	// Env: OBSERVABILITY_METRICS_ADDRESS
	MetricsAddress string `env:"METRICS_ADDRESS"`

	// OTLPEndpoint enables trace export over OTLP/gRPC when non-empty.
	// Env: OBSERVABILITY_OTLP_ENDPOINT
	OTLPEndpoint string `env:"OTLP_ENDPOINT"`

	// LogFile is the rotated client log file.
	// Env: OBSERVABILITY_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
