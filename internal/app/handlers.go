package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/genealogy-backend/internal/http"
	httpH "github.com/yungbote/genealogy-backend/internal/http/handlers"
	"github.com/yungbote/genealogy-backend/internal/observability"
	"github.com/yungbote/genealogy-backend/internal/platform/logger"
)

type Handlers struct {
	Health    *httpH.HealthHandler
	Genealogy *httpH.GenealogyHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(services.Genealogy),
		Genealogy: httpH.NewGenealogyHandler(services.Genealogy),
	}
}

func routerConfig(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers) http.RouterConfig {
	gin.SetMode(cfg.ginMode())
	rc := http.RouterConfig{
		Log:              log,
		Metrics:          metrics,
		CORSOrigins:      cfg.CORSOrigins,
		GenealogyHandler: handlers.Genealogy,
		HealthHandler:    handlers.Health,
	}
	if cfg.OtelEnabled {
		rc.ServiceName = cfg.ServiceName
	}
	return rc
}
