package neo4jdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/genealogy-backend/internal/platform/envutil"
	"github.com/yungbote/genealogy-backend/internal/platform/logger"
)

var ErrNotConfigured = errors.New("neo4jdb: client not configured")

type Config struct {
	URI      string
	User     string
	Password string
	Database string
	Timeout  time.Duration
	MaxPool  int
}

func ConfigFromEnv() Config {
	return Config{
		URI:      envutil.String("NEO4J_URI", ""),
		User:     envutil.String("NEO4J_USER", "neo4j"),
		Password: envutil.String("NEO4J_PASSWORD", ""),
		Database: envutil.String("NEO4J_DATABASE", ""),
		Timeout:  envutil.Seconds("NEO4J_TIMEOUT_SECONDS", 10*time.Second),
		MaxPool:  envutil.Int("NEO4J_MAX_POOL_SIZE", 50),
	}
}

type Client struct {
	Driver   neo4j.DriverWithContext
	Database string
	log      *logger.Logger
}

// NewFromEnv returns (nil, nil) when NEO4J_URI is unset.
func NewFromEnv(log *logger.Logger) (*Client, error) {
	cfg := ConfigFromEnv()
	if cfg.URI == "" {
		return nil, nil
	}
	return New(log, cfg)
}

func New(log *logger.Logger, cfg Config) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("neo4jdb: logger required")
	}
	if cfg.URI == "" {
		return nil, fmt.Errorf("neo4jdb: uri required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxPool <= 0 {
		cfg.MaxPool = 50
	}

	auth := neo4j.BasicAuth(cfg.User, cfg.Password, "")
	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth, func(c *neo4j.Config) {
		c.MaxConnectionPoolSize = cfg.MaxPool
		c.SocketConnectTimeout = cfg.Timeout
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jdb: init driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4jdb: verify connectivity: %w", err)
	}

	log.Info("neo4j connected", "uri", cfg.URI, "database", cfg.Database, "max_pool", cfg.MaxPool)
	return &Client{
		Driver:   driver,
		Database: cfg.Database,
		log:      log.With("client", "Neo4jDB"),
	}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.Driver == nil {
		return ErrNotConfigured
	}
	return c.Driver.VerifyConnectivity(ctx)
}

func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.Driver == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := c.Driver.Close(ctx)
	c.Driver = nil
	return err
}

func (c *Client) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return c.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: c.Database,
	})
}

// Write runs work in a managed write transaction on a session scoped to this call.
// The session is closed on every return path.
func Write[T any](ctx context.Context, c *Client, work neo4j.ManagedTransactionWorkT[T]) (T, error) {
	var zero T
	if c == nil || c.Driver == nil {
		return zero, ErrNotConfigured
	}
	session := c.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)
	return neo4j.ExecuteWrite(ctx, session, work)
}

// Read is the read-mode counterpart of Write.
func Read[T any](ctx context.Context, c *Client, work neo4j.ManagedTransactionWorkT[T]) (T, error) {
	var zero T
	if c == nil || c.Driver == nil {
		return zero, ErrNotConfigured
	}
	session := c.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)
	return neo4j.ExecuteRead(ctx, session, work)
}

// RunSchema executes best-effort schema statements outside a managed transaction.
// Failures are logged and skipped.
func (c *Client) RunSchema(ctx context.Context, stmts ...string) {
	if c == nil || c.Driver == nil {
		return
	}
	session := c.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)
	for _, q := range stmts {
		res, err := session.Run(ctx, q, nil)
		if err != nil {
			c.log.Warn("neo4j schema init failed (continuing)", "error", err)
			continue
		}
		_, _ = res.Consume(ctx)
	}
}
