package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/riskibarqy/koralink/internal/config"
	"github.com/riskibarqy/koralink/internal/infrastructure/kvstore"
	"github.com/riskibarqy/koralink/internal/infrastructure/repository/local"
	"github.com/riskibarqy/koralink/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/koralink/internal/platform/id"
	"github.com/riskibarqy/koralink/internal/platform/logging"
	"github.com/riskibarqy/koralink/internal/platform/resilience"
	"github.com/riskibarqy/koralink/internal/usecase"
)

// App owns the HTTP server and the persistence stack behind it.
type App struct {
	cfg    config.Config
	logger *logging.Logger
	kv     kvstore.Store
	store  *local.Store
	server *http.Server
}

// New opens the slot backend, hydrates the local store and builds the router.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	kv, err := kvstore.Open(ctx, kvOptions(cfg), logger.Named("kvstore"))
	if err != nil {
		return nil, fmt.Errorf("open kv store: %w", err)
	}

	store, err := local.Open(ctx, kv, local.Options{
		FreeAgentTTL: cfg.FreeAgentTTL,
		PersistMode:  local.PersistMode(cfg.PersistMode),
		Workers:      cfg.PersistWorkers,
		Logger:       logger.Named("local"),
	})
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("open local store: %w", err)
	}

	profileSvc := usecase.NewProfileService(store, idgen.NewTimestampGenerator())
	handler := httpapi.NewHandler(
		profileSvc,
		usecase.NewThemeService(store),
		usecase.NewTeamService(store, store, logger),
		usecase.NewInviteService(store, store, logger),
		usecase.NewMatchService(store, store, logger),
		usecase.NewRatingService(store, store, store),
		usecase.NewFreeAgentService(store),
		usecase.NewReportService(store),
		logger,
	)
	router := httpapi.NewRouter(handler, profileSvc, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	return &App{
		cfg:    cfg,
		logger: logger,
		kv:     kv,
		store:  store,
		server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}, nil
}

func kvOptions(cfg config.Config) kvstore.Options {
	return kvstore.Options{
		Backend:     cfg.KVBackend,
		FileDir:     cfg.KVFileDir,
		SQLitePath:  cfg.KVSQLitePath,
		PostgresDSN: cfg.DBURL,
		Redis: kvstore.RedisConfig{
			Addr:     cfg.KVRedisAddr,
			Password: cfg.KVRedisPassword,
			DB:       cfg.KVRedisDB,
			Prefix:   cfg.KVRedisPrefix,
		},
		S3: kvstore.S3Config{
			Bucket:    cfg.KVS3Bucket,
			Region:    cfg.KVS3Region,
			Endpoint:  cfg.KVS3Endpoint,
			AccessKey: cfg.KVS3AccessKey,
			SecretKey: cfg.KVS3SecretKey,
			Prefix:    cfg.KVS3Prefix,
		},
		Circuit: resilience.NormalizeCircuitBreakerConfig(resilience.CircuitBreakerConfig{
			Enabled:          cfg.KVCircuitEnabled,
			FailureThreshold: cfg.KVCircuitFailureCount,
			OpenTimeout:      cfg.KVCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.KVCircuitHalfOpenMaxReq,
		}),
	}
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Serve blocks until the listener fails or Shutdown is called.
func (a *App) Serve(ln net.Listener) error {
	a.logger.Info("http server starting", "addr", ln.Addr().String())
	if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) ListenAndServe() error {
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.server.Addr, err)
	}
	return a.Serve(ln)
}

// Shutdown stops accepting requests, then flushes pending slot writes before
// releasing the backend.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if err := a.store.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("close local store: %w", err))
	}
	if err := a.kv.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close kv store: %w", err))
	}
	if len(errs) == 0 {
		a.logger.Info("http server stopped")
	}
	return errors.Join(errs...)
}
