// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks the merged [StructuredConfig] before it is mapped onto a
// client or server view. Only values that are wrong regardless of role are
// rejected here.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Adapter.Backend {
	case "", BackendHTTP, BackendRedis, BackendMinIO:
	default:
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.UploadConcurrency < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	local := cfg.Storage.Local
	if local.DSN == "" || strings.Contains(local.DSN, "memory") || local.LedgerPath == "" {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Adapter.Backend {
	case BackendHTTP:
		if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
			return ErrInvalidAdapterConfigs
		}
		if cfg.App.HashKey == "" || cfg.App.TokenSignKey == "" {
			return ErrInvalidAppConfigs
		}
	case BackendRedis:
		if cfg.Adapter.Redis.Address == "" {
			return ErrInvalidAdapterConfigs
		}
	case BackendMinIO:
		if cfg.Adapter.MinIO.Endpoint == "" || cfg.Adapter.MinIO.Bucket == "" {
			return ErrInvalidAdapterConfigs
		}
	default:
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.FullSyncInterval <= 0 || cfg.Workers.UploadConcurrency <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
