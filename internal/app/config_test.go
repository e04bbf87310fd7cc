package app

import (
	"reflect"
	"testing"
	"time"

	"github.com/yungbote/genealogy-backend/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_BACKEND", "CORS_ALLOW_ORIGINS", "VIEW_CACHE_TTL_SECONDS", "METRICS_ENABLED", "NEO4J_URI"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig(logger.NewNop())
	if cfg.Addr() != ":9000" {
		t.Fatalf("addr: want=%q got=%q", ":9000", cfg.Addr())
	}
	if cfg.StoreBackendRaw != "neo4j" {
		t.Fatalf("store backend: got=%q", cfg.StoreBackendRaw)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Fatalf("cors origins: got=%v", cfg.CORSOrigins)
	}
	if cfg.ViewCacheTTL != 5*time.Minute {
		t.Fatalf("view cache ttl: got=%v", cfg.ViewCacheTTL)
	}
	if cfg.MetricsEnabled {
		t.Fatalf("metrics should be off by default")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("VIEW_CACHE_TTL_SECONDS", "30")
	t.Setenv("METRICS_ENABLED", "true")

	cfg := LoadConfig(nil)
	if cfg.Addr() != ":8088" {
		t.Fatalf("addr: got=%q", cfg.Addr())
	}
	if cfg.StoreBackendRaw != "memory" {
		t.Fatalf("store backend: got=%q", cfg.StoreBackendRaw)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"http://a.test", "http://b.test"}) {
		t.Fatalf("cors origins: got=%v", cfg.CORSOrigins)
	}
	if cfg.ViewCacheTTL != 30*time.Second {
		t.Fatalf("view cache ttl: got=%v", cfg.ViewCacheTTL)
	}
	if !cfg.MetricsEnabled {
		t.Fatalf("metrics should be enabled")
	}
}

func TestGinModeFallsBackToRelease(t *testing.T) {
	for raw, want := range map[string]string{"debug": "debug", "test": "test", "release": "release", "verbose": "release", "": "release"} {
		if got := (Config{GinMode: raw}).ginMode(); got != want {
			t.Fatalf("ginMode(%q): want=%q got=%q", raw, want, got)
		}
	}
}

func TestOtelFlagDrivesProviderAndRouterTogether(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	for _, enabled := range []bool{true, false} {
		cfg := Config{GinMode: "test", OtelEnabled: enabled, ServiceName: "genealogy-test"}
		if got := cfg.otelConfig().Enabled; got != enabled {
			t.Fatalf("otel config enabled: got=%v want=%v", got, enabled)
		}
		rc := routerConfig(logger.NewNop(), cfg, nil, Handlers{})
		if (rc.ServiceName != "") != enabled {
			t.Fatalf("router otelgin: service=%q enabled=%v", rc.ServiceName, enabled)
		}
	}
}
