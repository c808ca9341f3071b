package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jira-query-agent/internal/model"
)

const (
	// HeaderRequestID carries the correlation id; generated when absent.
	HeaderRequestID = "X-Request-Id"
	// HeaderAccountID identifies the tracker account the query runs as.
	// When absent, generated JQL falls back to currentUser().
	HeaderAccountID = "X-Account-Id"

	scopeKey = "scope"
)

// RequestID ensures every request carries a correlation id, echoed back
// in the response headers.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Set(HeaderRequestID, id)
		c.Next()
	}
}

// Scope extracts the caller's tracker account into the request scope.
func (m Middleware) Scope() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(scopeKey, model.Scope{UserID: c.GetHeader(HeaderAccountID)})
		c.Next()
	}
}

// GetScope returns the scope set by the Scope middleware.
func GetScope(c *gin.Context) model.Scope {
	if v, ok := c.Get(scopeKey); ok {
		if sc, ok := v.(model.Scope); ok {
			return sc
		}
	}
	return model.Scope{}
}

// AccessLog logs each request with latency and status after completion.
func (m Middleware) AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.l.Infof(c.Request.Context(), "%s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
