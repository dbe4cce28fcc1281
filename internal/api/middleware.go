// internal/api/middleware.go
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"property-listings/internal/common/auth"
	"property-listings/internal/common/metrics"
)

const (
	HeaderRequestID = "X-Request-ID"

	ctxRequestID = "requestId"
	ctxPrincipal = "principal"
)

// requestID reuses an inbound X-Request-ID or mints a new one and echoes it.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func requestIDOf(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}

// routeOf is the matched route template, so metrics stay low-cardinality.
func routeOf(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unmatched"
}

func (s *server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		elapsed := time.Since(start)
		route := routeOf(c)
		status := c.Writer.Status()

		metrics.HTTPRequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, c.Request.Method).Observe(elapsed.Seconds())

		s.logger.Info("HTTP request", map[string]interface{}{
			"requestId":  requestIDOf(c),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"route":      route,
			"status":     status,
			"durationMs": elapsed.Milliseconds(),
			"ip":         c.ClientIP(),
		})
	}
}

// recovery turns a panic into the generic 500 envelope.
func (s *server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				s.respondError(c, fmt.Errorf("panic: %v", rec))
			}
		}()
		c.Next()
	}
}

// authenticate requires a valid bearer token. Rejected tokens get 401; an
// unreachable identity provider is a 500.
func (s *server) authenticate(a auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.BearerToken(c.GetHeader("Authorization"))
		principal, err := a.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrMissingToken) || errors.Is(err, auth.ErrInvalidToken) {
				fail(c, http.StatusUnauthorized, "Unauthorized")
				return
			}
			s.respondError(c, err)
			return
		}
		c.Set(ctxPrincipal, principal)
		c.Next()
	}
}
