package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/koralink/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	CORSAllowedOrigins         []string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	ShutdownTimeout            time.Duration
	SwaggerEnabled             bool
	KVBackend                  string
	KVFileDir                  string
	KVSQLitePath               string
	DBURL                      string
	KVRedisAddr                string
	KVRedisPassword            string
	KVRedisDB                  int
	KVRedisPrefix              string
	KVS3Bucket                 string
	KVS3Region                 string
	KVS3Endpoint               string
	KVS3AccessKey              string
	KVS3SecretKey              string
	KVS3Prefix                 string
	KVCircuitEnabled           bool
	KVCircuitFailureCount      int
	KVCircuitOpenTimeout       time.Duration
	KVCircuitHalfOpenMaxReq    int
	PersistMode                string
	PersistWorkers             int
	FreeAgentTTL               time.Duration
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	LogLevel                   logging.Level
}

const (
	KVBackendMemory   = "memory"
	KVBackendFile     = "file"
	KVBackendSQLite   = "sqlite"
	KVBackendPostgres = "postgres"
	KVBackendRedis    = "redis"
	KVBackendS3       = "s3"
)

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	readTimeout, err := getEnvAsPositiveDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsPositiveDuration("APP_WRITE_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := getEnvAsPositiveDuration("APP_SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}

	kv, err := loadKV()
	if err != nil {
		return Config{}, err
	}

	persistMode := strings.ToLower(strings.TrimSpace(getEnv("PERSIST_MODE", "sync")))
	if persistMode != "sync" && persistMode != "async" {
		return Config{}, fmt.Errorf("invalid PERSIST_MODE %q: valid values are sync, async", persistMode)
	}
	persistWorkers, err := getEnvAsInt("PERSIST_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse PERSIST_WORKERS: %w", err)
	}
	if persistWorkers < 1 {
		return Config{}, fmt.Errorf("PERSIST_WORKERS must be >= 1")
	}
	freeAgentTTL, err := getEnvAsPositiveDuration("FREE_AGENT_TTL", "24h")
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsPositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := kv
	cfg.AppEnv = appEnv
	cfg.ServiceName = getEnv("APP_SERVICE_NAME", "koralink-api")
	cfg.ServiceVersion = getEnv("APP_SERVICE_VERSION", "dev")
	cfg.HTTPAddr = getEnv("APP_HTTP_ADDR", ":8080")
	cfg.CORSAllowedOrigins = splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))
	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.ShutdownTimeout = shutdownTimeout
	cfg.SwaggerEnabled = swaggerEnabled
	cfg.PersistMode = persistMode
	cfg.PersistWorkers = persistWorkers
	cfg.FreeAgentTTL = freeAgentTTL
	cfg.PprofEnabled = pprofEnabled
	cfg.PprofAddr = pprofAddr
	cfg.UptraceEnabled = uptraceEnabled
	cfg.UptraceDSN = uptraceDSN
	cfg.UptraceLogsEnabled = uptraceLogsEnabled
	cfg.PyroscopeEnabled = pyroscopeEnabled
	cfg.PyroscopeServerAddress = pyroscopeServerAddress
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	cfg.PyroscopeUploadRate = pyroscopeUploadRate
	cfg.LogLevel = logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))

	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

// loadKV reads the persistence backend settings and checks that the chosen
// backend has what it needs.
func loadKV() (Config, error) {
	backend := strings.ToLower(strings.TrimSpace(getEnv("KV_BACKEND", KVBackendFile)))

	redisDB, err := getEnvAsInt("KV_REDIS_DB", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse KV_REDIS_DB: %w", err)
	}
	if redisDB < 0 {
		return Config{}, fmt.Errorf("KV_REDIS_DB must be >= 0")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("KV_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse KV_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("KV_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse KV_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailureCount < 1 {
		return Config{}, fmt.Errorf("KV_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	circuitOpenTimeout, err := getEnvAsPositiveDuration("KV_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("KV_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse KV_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("KV_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	cfg := Config{
		KVBackend:               backend,
		KVFileDir:               strings.TrimSpace(getEnv("KV_FILE_DIR", "./data")),
		KVSQLitePath:            strings.TrimSpace(getEnv("KV_SQLITE_PATH", "./data/koralink.db")),
		DBURL:                   strings.TrimSpace(getEnv("DB_URL", "")),
		KVRedisAddr:             strings.TrimSpace(getEnv("KV_REDIS_ADDR", "")),
		KVRedisPassword:         getEnv("KV_REDIS_PASSWORD", ""),
		KVRedisDB:               redisDB,
		KVRedisPrefix:           strings.TrimSpace(getEnv("KV_REDIS_PREFIX", "koralink:")),
		KVS3Bucket:              strings.TrimSpace(getEnv("KV_S3_BUCKET", "")),
		KVS3Region:              strings.TrimSpace(getEnv("KV_S3_REGION", "auto")),
		KVS3Endpoint:            strings.TrimSpace(getEnv("KV_S3_ENDPOINT", "")),
		KVS3AccessKey:           strings.TrimSpace(getEnv("KV_S3_ACCESS_KEY", "")),
		KVS3SecretKey:           strings.TrimSpace(getEnv("KV_S3_SECRET_KEY", "")),
		KVS3Prefix:              strings.TrimSpace(getEnv("KV_S3_PREFIX", "koralink/")),
		KVCircuitEnabled:        circuitEnabled,
		KVCircuitFailureCount:   circuitFailureCount,
		KVCircuitOpenTimeout:    circuitOpenTimeout,
		KVCircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,
	}

	switch backend {
	case KVBackendMemory:
	case KVBackendFile:
		if cfg.KVFileDir == "" {
			return Config{}, fmt.Errorf("KV_FILE_DIR is required when KV_BACKEND=file")
		}
	case KVBackendSQLite:
		if cfg.KVSQLitePath == "" {
			return Config{}, fmt.Errorf("KV_SQLITE_PATH is required when KV_BACKEND=sqlite")
		}
	case KVBackendPostgres:
		if cfg.DBURL == "" {
			return Config{}, fmt.Errorf("DB_URL is required when KV_BACKEND=postgres")
		}
	case KVBackendRedis:
		if cfg.KVRedisAddr == "" {
			return Config{}, fmt.Errorf("KV_REDIS_ADDR is required when KV_BACKEND=redis")
		}
	case KVBackendS3:
		if cfg.KVS3Bucket == "" {
			return Config{}, fmt.Errorf("KV_S3_BUCKET is required when KV_BACKEND=s3")
		}
	default:
		return Config{}, fmt.Errorf("invalid KV_BACKEND %q: valid values are memory, file, sqlite, postgres, redis, s3", backend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsPositiveDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
