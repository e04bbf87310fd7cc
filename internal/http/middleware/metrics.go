package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/genealogy-backend/internal/http/response"
	"github.com/yungbote/genealogy-backend/internal/observability"
)

const unmatchedRoute = "unmatched"

// Metrics records request counts and latency per route template, plus one
// count per error envelope code written by the handlers.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		m.ApiInflightInc()
		defer m.ApiInflightDec()

		c.Next()

		route := routeLabel(c)
		m.ObserveAPI(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
		if code := c.GetString(response.ErrorCodeKey); code != "" {
			m.ObserveAPIError(route, code)
		}
	}
}

// routeLabel keeps person ids inside the template. Paths the router does not
// know collapse into a single label.
func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return unmatchedRoute
}
