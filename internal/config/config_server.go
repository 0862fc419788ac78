package config

import (
	"fmt"
	"time"
)

// ServerConfig is the document server view of [StructuredConfig].
type ServerConfig struct {
	App           App
	Server        Server
	Storage       Storage
	Observability Observability
}

// GetServerConfig builds and validates the document server configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := NewServerConfig(cfg)

	return serverCfg, serverCfg.validate()
}

// NewServerConfig maps cfg onto a [ServerConfig] and applies server defaults.
func NewServerConfig(cfg *StructuredConfig) *ServerConfig {
	server := cfg.Server
	server.RequestTimeout = durationOrDefault(server.RequestTimeout, 30*time.Second)

	app := cfg.App
	app.TokenIssuer = stringOrDefault(app.TokenIssuer, DefaultTokenIssuer)

	return &ServerConfig{
		App:           app,
		Server:        server,
		Storage:       cfg.Storage,
		Observability: cfg.Observability,
	}
}
