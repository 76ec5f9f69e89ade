// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// MaxRequestIDLength caps request IDs taken from headers.
	MaxRequestIDLength = 128
	// MaxOrgIDLength caps organization IDs taken from headers.
	MaxOrgIDLength = 64
)

// uuidRegex validates UUID format for org IDs taken from headers.
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	// ServiceName is the name of the service for trace identification.
	ServiceName string
	// Enabled controls whether tracing is active.
	Enabled bool
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "tiendapro-backend",
		Enabled:     true,
	}
}

// Tracing returns OpenTelemetry tracing middleware with default configuration.
func Tracing() gin.HandlerFunc {
	return TracingWithConfig(DefaultTracingConfig())
}

// TracingWithConfig returns OpenTelemetry tracing middleware. It wraps
// otelgin and enriches each span with request_id, org_id and user_id
// attributes when they are available.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	baseMiddleware := otelgin.Middleware(cfg.ServiceName)

	return func(c *gin.Context) {
		baseMiddleware(c)

		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			enrichSpanWithAttributes(c, span)
		}
	}
}

func enrichSpanWithAttributes(c *gin.Context, span trace.Span) {
	if requestID := getRequestID(c); requestID != "" {
		span.SetAttributes(attribute.String("request_id", requestID))
	}
	if orgID := getOrgID(c); orgID != "" {
		span.SetAttributes(attribute.String("org_id", orgID))
	}
	if userID := getUserID(c); userID != "" {
		span.SetAttributes(attribute.String("user_id", userID))
	}
}

// getRequestID retrieves the request ID from the gin context or header.
// Header values are truncated to a sane length.
func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok && id != "" {
			return id
		}
	}

	headerID := c.GetHeader("X-Request-ID")
	if len(headerID) > MaxRequestIDLength {
		return headerID[:MaxRequestIDLength]
	}
	return headerID
}

// getOrgID retrieves the organization ID from JWT claims. Claims are the
// only trusted source; headers are not consulted.
func getOrgID(c *gin.Context) string {
	if orgID, exists := c.Get(JWTOrgIDKey); exists {
		if id, ok := orgID.(string); ok && id != "" && isValidOrgID(id) {
			return id
		}
	}
	return ""
}

// isValidOrgID rejects values that would inject garbage into trace attributes.
func isValidOrgID(orgID string) bool {
	if len(orgID) > MaxOrgIDLength {
		return false
	}
	return uuidRegex.MatchString(orgID)
}

func getUserID(c *gin.Context) string {
	if userID, exists := c.Get(JWTUserIDKey); exists {
		if id, ok := userID.(string); ok && id != "" {
			return id
		}
	}
	return ""
}

// SpanErrorMarker marks spans with error status for 4xx/5xx responses.
// It must run after the Tracing middleware.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		statusCode := c.Writer.Status()
		if statusCode < http.StatusBadRequest {
			return
		}

		span.SetStatus(codes.Error, http.StatusText(statusCode))
		span.SetAttributes(attribute.Int("http.status_code", statusCode))
	}
}

// TracingAttributeInjector re-enriches the current span after the JWT
// middleware has run, so authenticated identity lands on the span.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			enrichSpanWithAttributes(c, span)
		}
		c.Next()
	}
}
