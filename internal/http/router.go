package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/genealogy-backend/internal/http/handlers"
	httpMW "github.com/yungbote/genealogy-backend/internal/http/middleware"
	"github.com/yungbote/genealogy-backend/internal/observability"
	"github.com/yungbote/genealogy-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	CORSOrigins []string
	ServiceName string

	GenealogyHandler *httpH.GenealogyHandler
	HealthHandler    *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	// Metrics
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	genealogy := r.Group("/genealogy")
	if h := cfg.GenealogyHandler; h != nil {
		// Commands
		genealogy.POST("/addPerson", h.AddPerson)
		genealogy.POST("/addParentChildRelationship", h.AddParentChild)
		genealogy.POST("/addMarriageRelationship", h.AddMarriage)
		genealogy.DELETE("/deletePerson/:personId", h.DeletePerson)
		genealogy.DELETE("/deleteMarriage/:spouse1Id/:spouse2Id", h.DeleteMarriage)

		// Views
		genealogy.GET("/getAllPeople", h.ListPeople)
		genealogy.GET("/getAllMales", h.ListMales)
		genealogy.GET("/getAllFemales", h.ListFemales)
		genealogy.GET("/getUnmarriedPeople", h.ListUnmarried)
		genealogy.GET("/getMarriedPeople", h.ListMarried)
		genealogy.GET("/getPerson/:personId", h.GetPerson)
	}

	return r
}
