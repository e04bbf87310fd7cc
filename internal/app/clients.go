package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/genealogy-backend/internal/platform/logger"
	"github.com/yungbote/genealogy-backend/internal/platform/neo4jdb"
	"github.com/yungbote/genealogy-backend/internal/platform/redisdb"
)

type Clients struct {
	Neo4j *neo4jdb.Client
	Redis *goredis.Client
}

func wireClients(log *logger.Logger, backend StoreBackendConfig) (Clients, error) {
	log.Info("Wiring clients...")

	var out Clients
	if backend.Backend == StoreBackendNeo4j {
		n, err := neo4jdb.New(log, backend.Neo4j)
		if err != nil {
			return Clients{}, fmt.Errorf("init neo4j: %w", err)
		}
		out.Neo4j = n
	}

	// Redis only backs the view cache of a shared store.
	if backend.Backend != StoreBackendNeo4j {
		return out, nil
	}
	rdb, err := redisdb.NewFromEnv(log)
	if err != nil {
		out.Close(context.Background())
		return Clients{}, fmt.Errorf("init redis: %w", err)
	}
	out.Redis = rdb
	return out, nil
}

func (c *Clients) Close(ctx context.Context) {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Neo4j != nil {
		_ = c.Neo4j.Close(ctx)
	}
}
