package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/genealogy-backend/internal/http/response"
)

type readiness interface {
	Ready(ctx context.Context) error
}

type HealthHandler struct {
	ready readiness
}

// NewHealthHandler takes the component probed by /readyz; nil means always ready.
func NewHealthHandler(ready readiness) *HealthHandler { return &HealthHandler{ready: ready} }

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *HealthHandler) Ready(c *gin.Context) {
	if h.ready != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.ready.Ready(ctx); err != nil {
			_ = c.Error(err)
			response.RespondError(c, http.StatusServiceUnavailable, "store_unavailable", "Store is not reachable.")
			return
		}
	}
	response.RespondOK(c, gin.H{"message": "ready"})
}
