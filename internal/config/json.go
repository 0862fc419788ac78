package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		HashKey       string   `json:"hash_key"`
		DeviceID      string   `json:"device_id"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Local struct {
			DSN        string `json:"dsn"`
			LedgerPath string `json:"ledger_path"`
		} `json:"local,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		Backend        string   `json:"backend"`
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		Redis          struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`
		MinIO struct {
			Endpoint  string `json:"endpoint"`
			AccessKey string `json:"access_key"`
			SecretKey string `json:"secret_key"`
			Bucket    string `json:"bucket"`
			UseSSL    bool   `json:"use_ssl"`
		} `json:"minio,omitempty"`
	} `json:"adapter,omitempty"`

	Workers struct {
		FullSyncInterval   Duration `json:"full_sync_interval"`
		ScopedSyncInterval Duration `json:"scoped_sync_interval"`
		ScopedGroups       []string `json:"scoped_groups"`
		UploadConcurrency  int      `json:"upload_concurrency"`
		RetryBaseDelay     Duration `json:"retry_base_delay"`
	} `json:"workers,omitempty"`

	Observability struct {
		MetricsAddress string `json:"metrics_address"`
		OTLPEndpoint   string `json:"otlp_endpoint"`
		LogFile        string `json:"log_file"`
	} `json:"observability,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			HashKey:       jsonCfg.App.HashKey,
			DeviceID:      jsonCfg.App.DeviceID,
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Local: Local{
				DSN:        jsonCfg.Storage.Local.DSN,
				LedgerPath: jsonCfg.Storage.Local.LedgerPath,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			Backend:        jsonCfg.Adapter.Backend,
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			Redis: Redis{
				Address:  jsonCfg.Adapter.Redis.Address,
				Password: jsonCfg.Adapter.Redis.Password,
				DB:       jsonCfg.Adapter.Redis.DB,
			},
			MinIO: MinIO{
				Endpoint:  jsonCfg.Adapter.MinIO.Endpoint,
				AccessKey: jsonCfg.Adapter.MinIO.AccessKey,
				SecretKey: jsonCfg.Adapter.MinIO.SecretKey,
				Bucket:    jsonCfg.Adapter.MinIO.Bucket,
				UseSSL:    jsonCfg.Adapter.MinIO.UseSSL,
			},
		},
		Workers: Workers{
			FullSyncInterval:   time.Duration(jsonCfg.Workers.FullSyncInterval),
			ScopedSyncInterval: time.Duration(jsonCfg.Workers.ScopedSyncInterval),
			ScopedGroups:       jsonCfg.Workers.ScopedGroups,
			UploadConcurrency:  jsonCfg.Workers.UploadConcurrency,
			RetryBaseDelay:     time.Duration(jsonCfg.Workers.RetryBaseDelay),
		},
		Observability: Observability{
			MetricsAddress: jsonCfg.Observability.MetricsAddress,
			OTLPEndpoint:   jsonCfg.Observability.OTLPEndpoint,
			LogFile:        jsonCfg.Observability.LogFile,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
