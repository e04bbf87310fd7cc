package app

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/genealogy-backend/internal/observability"
	"github.com/yungbote/genealogy-backend/internal/platform/envutil"
	"github.com/yungbote/genealogy-backend/internal/platform/logger"
	"github.com/yungbote/genealogy-backend/internal/platform/neo4jdb"
)

type Config struct {
	Port            string
	GinMode         string
	StoreBackendRaw string
	Neo4j           neo4jdb.Config
	CORSOrigins     []string
	MetricsEnabled  bool
	OtelEnabled     bool
	ViewCacheTTL    time.Duration
	ViewCachePrefix string
	ShutdownTimeout time.Duration
	ServiceName     string
	Environment     string
	Version         string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:            envutil.String("PORT", "9000"),
		GinMode:         envutil.String("GIN_MODE", "release"),
		StoreBackendRaw: envutil.String("STORE_BACKEND", string(StoreBackendNeo4j)),
		Neo4j:           neo4jdb.ConfigFromEnv(),
		CORSOrigins:     envutil.List("CORS_ALLOW_ORIGINS", []string{"*"}),
		MetricsEnabled:  observability.Enabled(),
		OtelEnabled:     envutil.Bool("OTEL_ENABLED", false),
		ViewCacheTTL:    envutil.Seconds("VIEW_CACHE_TTL_SECONDS", 5*time.Minute),
		ViewCachePrefix: envutil.String("VIEW_CACHE_PREFIX", "genealogy:views"),
		ShutdownTimeout: envutil.Seconds("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		ServiceName:     envutil.String("OTEL_SERVICE_NAME", "genealogy-backend"),
		Environment:     envutil.String("APP_ENV", "development"),
		Version:         envutil.String("APP_VERSION", "dev"),
	}
	if log != nil {
		log.Info("config loaded",
			"port", cfg.Port,
			"store_backend", cfg.StoreBackendRaw,
			"neo4j_uri", cfg.Neo4j.URI,
			"metrics_enabled", cfg.MetricsEnabled,
			"cors_origins", cfg.CORSOrigins,
		)
	}
	return cfg
}

func (c Config) Addr() string { return ":" + c.Port }

// otelConfig is the single source for whether tracing runs; the router
// installs otelgin from the same flag.
func (c Config) otelConfig() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.OtelEnabled,
		ServiceName: c.ServiceName,
		Environment: c.Environment,
		Version:     c.Version,
	}
}

// ginMode maps GIN_MODE onto a mode gin accepts; gin.SetMode panics otherwise.
func (c Config) ginMode() string {
	switch c.GinMode {
	case gin.DebugMode, gin.TestMode:
		return c.GinMode
	default:
		return gin.ReleaseMode
	}
}
