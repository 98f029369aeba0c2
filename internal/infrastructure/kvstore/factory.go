package kvstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/koralink/internal/platform/logging"
	"github.com/riskibarqy/koralink/internal/platform/resilience"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendS3       = "s3"
)

type Options struct {
	Backend     string
	FileDir     string
	SQLitePath  string
	PostgresDSN string
	Redis       RedisConfig
	S3          S3Config
	Circuit     resilience.CircuitBreakerConfig
}

// Open builds the configured backend. Remote backends are wrapped with a
// circuit breaker when Circuit.Enabled is set.
func Open(ctx context.Context, opts Options, logger *logging.Logger) (Store, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))

	var (
		store  Store
		remote bool
		err    error
	)
	switch backend {
	case BackendMemory, "":
		backend = BackendMemory
		store = NewMemoryStore()
	case BackendFile:
		store, err = NewFileStore(opts.FileDir)
	case BackendSQLite:
		store, err = OpenSQLite(ctx, opts.SQLitePath)
	case BackendPostgres:
		store, err = OpenPostgres(ctx, opts.PostgresDSN)
		remote = true
	case BackendRedis:
		store, err = OpenRedis(ctx, opts.Redis)
		remote = true
	case BackendS3:
		store = NewS3Store(opts.S3)
		remote = true
	default:
		return nil, fmt.Errorf("unknown kv backend %q", opts.Backend)
	}
	if err != nil {
		return nil, err
	}

	if remote && opts.Circuit.Enabled {
		store = NewGuardedStore(store, backend, opts.Circuit, logger)
	}

	if logger != nil {
		logger.Info("kv store opened", "backend", backend, "circuit_breaker", remote && opts.Circuit.Enabled)
	}
	return store, nil
}
