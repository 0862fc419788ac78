package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// GroupList is a comma separated list of group ids. It implements the
// flag.Value interface.
type GroupList []string

// ParseFlags registers all configuration flags on fs and parses args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d server database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-hash-key security hash key
//	-device-id client device id
//	-backend remote backend: http, redis or minio
//	-remote remote document server address
//	-redis-address redis backend address
//	-minio-endpoint minio backend endpoint
//	-minio-bucket minio backend bucket
//	-local-db local SQLite file
//	-ledger watermark ledger file
//	-full-interval full sync period
//	-scoped-interval scoped sync period
//	-groups comma separated group ids for scoped sync
//	-upload-concurrency concurrent remote writes per collection
//	-metrics-address prometheus listen address
//	-otlp-endpoint OTLP/gRPC collector endpoint
//	-log-file client log file
//	-once run a single pass and exit
func ParseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var groups GroupList
	var cfg StructuredConfig

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&cfg.App.HashKey, "hash-key", "", "Security hash key")
	fs.StringVar(&cfg.App.DeviceID, "device-id", "", "Client device id")

	fs.StringVar(&cfg.Adapter.Backend, "backend", "", "Remote backend: http, redis or minio")
	fs.StringVar(&cfg.Adapter.HTTPAddress, "remote", "", "Remote document server address")
	fs.StringVar(&cfg.Adapter.Redis.Address, "redis-address", "", "Redis backend address")
	fs.StringVar(&cfg.Adapter.MinIO.Endpoint, "minio-endpoint", "", "MinIO backend endpoint")
	fs.StringVar(&cfg.Adapter.MinIO.Bucket, "minio-bucket", "", "MinIO backend bucket")

	fs.StringVar(&cfg.Storage.Local.DSN, "local-db", "", "Local SQLite file")
	fs.StringVar(&cfg.Storage.Local.LedgerPath, "ledger", "", "Watermark ledger file")

	fs.DurationVar(&cfg.Workers.FullSyncInterval, "full-interval", 0, "Full sync period")
	fs.DurationVar(&cfg.Workers.ScopedSyncInterval, "scoped-interval", 0, "Scoped sync period")
	fs.Var(&groups, "groups", "Comma separated group ids for scoped sync")
	fs.IntVar(&cfg.Workers.UploadConcurrency, "upload-concurrency", 0, "Concurrent remote writes per collection")
	fs.BoolVar(&cfg.Workers.RunOnce, "once", false, "Run a single pass and exit")

	fs.StringVar(&cfg.Observability.MetricsAddress, "metrics-address", "", "Prometheus listen address")
	fs.StringVar(&cfg.Observability.OTLPEndpoint, "otlp-endpoint", "", "OTLP/gRPC collector endpoint")
	fs.StringVar(&cfg.Observability.LogFile, "log-file", "", "Client log file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Workers.ScopedGroups = groups

	return &cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

func (g *GroupList) String() string {
	return strings.Join(*g, ",")
}

// Set splits s on commas, dropping blanks. Repeated flags accumulate.
func (g *GroupList) Set(s string) error {
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			*g = append(*g, id)
		}
	}
	return nil
}

// durationOrDefault returns d, or def when d is not positive.
func durationOrDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
