package app

import (
	"context"
	"fmt"

	"github.com/yungbote/genealogy-backend/internal/data/cache"
	"github.com/yungbote/genealogy-backend/internal/data/graph"
	"github.com/yungbote/genealogy-backend/internal/observability"
	"github.com/yungbote/genealogy-backend/internal/platform/logger"
	"github.com/yungbote/genealogy-backend/internal/services"
)

type Services struct {
	Genealogy services.GenealogyService
}

func wireStore(ctx context.Context, log *logger.Logger, backend StoreBackendConfig, clients Clients) (graph.Store, error) {
	log.Info("Wiring store...", "backend", backend.Backend)
	switch backend.Backend {
	case StoreBackendMemory:
		return graph.NewMemoryStore(), nil
	case StoreBackendNeo4j:
		s, err := graph.NewNeo4jStore(clients.Neo4j, log)
		if err != nil {
			return nil, fmt.Errorf("init neo4j store: %w", err)
		}
		s.EnsureSchema(ctx)
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported store backend %q", backend.Backend)
	}
}

// wireViewCache keeps the cache scoped like the store. A memory store starts
// empty on every boot, so a shared Redis would serve people it no longer has.
func wireViewCache(log *logger.Logger, cfg Config, backend StoreBackendConfig, clients Clients) cache.ViewCache {
	switch {
	case backend.Backend == StoreBackendMemory:
		log.Info("view cache: in-process")
		return cache.NewMemoryViewCache()
	case clients.Redis != nil:
		log.Info("view cache: redis", "prefix", cfg.ViewCachePrefix, "ttl", cfg.ViewCacheTTL)
		return cache.NewRedisViewCache(clients.Redis, log, cfg.ViewCachePrefix, cfg.ViewCacheTTL)
	default:
		log.Info("view cache: disabled")
		return cache.NoopViewCache{}
	}
}

func wireServices(log *logger.Logger, store graph.Store, viewCache cache.ViewCache, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")
	return Services{
		Genealogy: services.NewGenealogyService(store, viewCache, metrics, log),
	}
}
