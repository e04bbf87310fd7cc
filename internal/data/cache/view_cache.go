package cache

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/genealogy-backend/internal/platform/logger"
)

// ViewCache stores serialized list views under a generation token.
//
// Lookup returns the token current at read time; Store must be given that
// same token so a payload loaded before an Invalidate never lands under the
// new generation.
type ViewCache interface {
	Lookup(ctx context.Context, view string) (payload []byte, token string, hit bool, err error)
	Store(ctx context.Context, view, token string, payload []byte) error
	Invalidate(ctx context.Context) error
}

type NoopViewCache struct{}

func (NoopViewCache) Lookup(context.Context, string) ([]byte, string, bool, error) {
	return nil, "", false, nil
}
func (NoopViewCache) Store(context.Context, string, string, []byte) error { return nil }
func (NoopViewCache) Invalidate(context.Context) error                    { return nil }

type RedisViewCache struct {
	rdb    *goredis.Client
	log    *logger.Logger
	prefix string
	ttl    time.Duration
}

func NewRedisViewCache(rdb *goredis.Client, log *logger.Logger, prefix string, ttl time.Duration) *RedisViewCache {
	if prefix == "" {
		prefix = "genealogy:views"
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisViewCache{rdb: rdb, log: log.With("service", "RedisViewCache"), prefix: prefix, ttl: ttl}
}

func (c *RedisViewCache) generationKey() string { return c.prefix + ":gen" }

func (c *RedisViewCache) viewKey(token, view string) string {
	return c.prefix + ":" + token + ":" + view
}

func (c *RedisViewCache) Lookup(ctx context.Context, view string) ([]byte, string, bool, error) {
	token, err := c.rdb.Get(ctx, c.generationKey()).Result()
	if errors.Is(err, goredis.Nil) {
		token = "0"
	} else if err != nil {
		return nil, "", false, err
	}
	payload, err := c.rdb.Get(ctx, c.viewKey(token, view)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, token, false, nil
	}
	if err != nil {
		return nil, token, false, err
	}
	return payload, token, true, nil
}

func (c *RedisViewCache) Store(ctx context.Context, view, token string, payload []byte) error {
	if token == "" {
		return nil
	}
	return c.rdb.Set(ctx, c.viewKey(token, view), payload, c.ttl).Err()
}

// Invalidate bumps the generation; old entries expire by TTL.
func (c *RedisViewCache) Invalidate(ctx context.Context) error {
	gen, err := c.rdb.Incr(ctx, c.generationKey()).Result()
	if err != nil {
		return err
	}
	c.log.Debug("view cache invalidated", "generation", gen)
	return nil
}

// MemoryViewCache is a single-process ViewCache.
type MemoryViewCache struct {
	mu      sync.Mutex
	gen     int64
	entries map[string][]byte
}

func NewMemoryViewCache() *MemoryViewCache {
	return &MemoryViewCache{entries: map[string][]byte{}}
}

func (c *MemoryViewCache) Lookup(_ context.Context, view string) ([]byte, string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	token := strconv.FormatInt(c.gen, 10)
	payload, ok := c.entries[token+":"+view]
	return payload, token, ok, nil
}

func (c *MemoryViewCache) Store(_ context.Context, view, token string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != strconv.FormatInt(c.gen, 10) {
		return nil
	}
	c.entries[token+":"+view] = payload
	return nil
}

func (c *MemoryViewCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.entries = map[string][]byte{}
	return nil
}
