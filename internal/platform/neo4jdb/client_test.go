package neo4jdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("NEO4J_URI", "")
	t.Setenv("NEO4J_USER", "")
	t.Setenv("NEO4J_TIMEOUT_SECONDS", "")
	t.Setenv("NEO4J_MAX_POOL_SIZE", "")
	cfg := ConfigFromEnv()
	if cfg.User != "neo4j" {
		t.Fatalf("default user: got=%q", cfg.User)
	}
	if cfg.Timeout != 10*time.Second || cfg.MaxPool != 50 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestNewFromEnvWithoutURIReturnsNil(t *testing.T) {
	t.Setenv("NEO4J_URI", "")
	c, err := NewFromEnv(nil)
	if err != nil || c != nil {
		t.Fatalf("expected nil client and nil error, got %v %v", c, err)
	}
}

func TestNilClientHelpers(t *testing.T) {
	var c *Client
	ctx := context.Background()
	if err := c.Ping(ctx); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Ping: got %v", err)
	}
	if err := c.Close(ctx); err != nil {
		t.Fatalf("Close: got %v", err)
	}
	_, err := Read(ctx, c, func(tx neo4j.ManagedTransaction) (int, error) { return 1, nil })
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Read: got %v", err)
	}
	_, err = Write(ctx, c, func(tx neo4j.ManagedTransaction) (int, error) { return 1, nil })
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Write: got %v", err)
	}
}
