package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/genealogy-backend/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"
)

// personParams are the route parameters that carry a PersonID.
var personParams = []string{"personId", "spouse1Id", "spouse2Id"}

// AttachTraceContext assigns request and trace ids, echoes them as headers
// and tags the active span with the person ids named in the route.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		reqID := strings.TrimSpace(c.GetHeader(headerRequestID))
		if reqID == "" {
			reqID = uuid.New().String()
		}
		traceID := resolveTraceID(c, span.SpanContext())

		ctx := ctxutil.WithTraceData(c.Request.Context(), &ctxutil.TraceData{
			TraceID:   traceID,
			RequestID: reqID,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Set("trace_id", traceID)
		c.Set("request_id", reqID)
		c.Writer.Header().Set(headerTraceID, traceID)
		c.Writer.Header().Set(headerRequestID, reqID)

		if span.IsRecording() {
			span.SetAttributes(spanAttributes(c, reqID)...)
		}
		c.Next()
	}
}

// resolveTraceID prefers the active span's id so log lines match exported traces.
func resolveTraceID(c *gin.Context, sc trace.SpanContext) string {
	if sc.HasTraceID() {
		return sc.TraceID().String()
	}
	if id := strings.TrimSpace(c.GetHeader(headerTraceID)); id != "" {
		return id
	}
	return uuid.New().String()
}

func spanAttributes(c *gin.Context, reqID string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String("genealogy.request_id", reqID)}
	for _, name := range personParams {
		if v := strings.TrimSpace(c.Param(name)); v != "" {
			attrs = append(attrs, attribute.String("genealogy."+name, v))
		}
	}
	return attrs
}
