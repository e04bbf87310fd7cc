package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/genealogy-backend/internal/data/graph"
	"github.com/yungbote/genealogy-backend/internal/http"
	"github.com/yungbote/genealogy-backend/internal/observability"
	"github.com/yungbote/genealogy-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Clients  Clients
	Store    graph.Store
	Services Services
	Metrics  *observability.Metrics
	Server   *http.Server

	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	a, err := NewWithConfig(ctx, log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}
	return a, nil
}

// NewWithConfig wires the app from an explicit config and logger.
func NewWithConfig(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	backend, err := resolveStoreBackend(cfg.StoreBackendRaw, cfg.Neo4j)
	if err != nil {
		return nil, err
	}

	otelShutdown := observability.InitOTel(ctx, log, cfg.otelConfig())

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	clients, err := wireClients(log, backend)
	if err != nil {
		_ = otelShutdown(ctx)
		return nil, err
	}
	store, err := wireStore(ctx, log, backend, clients)
	if err != nil {
		clients.Close(ctx)
		_ = otelShutdown(ctx)
		return nil, err
	}
	viewCache := wireViewCache(log, cfg, backend, clients)
	serviceset := wireServices(log, store, viewCache, metrics)
	handlerset := wireHandlers(log, serviceset)
	server := http.NewServer(cfg.Addr(), routerConfig(log, cfg, metrics, handlerset))

	return &App{
		Log:          log,
		Cfg:          cfg,
		Clients:      clients,
		Store:        store,
		Services:     serviceset,
		Metrics:      metrics,
		Server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests
// within the configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return errors.New("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("server listening", "addr", a.Cfg.Addr())
		return a.Server.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		a.Log.Info("shutting down server", "timeout", a.Cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		defer cancel()
		return a.Server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
	defer cancel()
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	a.Clients.Close(ctx)
	if a.Log != nil {
		a.Log.Sync()
	}
}
