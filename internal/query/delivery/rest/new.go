package rest

import (
	"github.com/gin-gonic/gin"

	"jira-query-agent/internal/middleware"
	"jira-query-agent/internal/query"
	pkgLog "jira-query-agent/pkg/log"
)

// Handler is the REST surface of the query domain.
type Handler interface {
	ProcessQuery(c *gin.Context)
	ListProjects(c *gin.Context)
}

type handler struct {
	l  pkgLog.Logger
	uc query.UseCase
}

// New creates a new query REST handler.
func New(l pkgLog.Logger, uc query.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}

// RegisterRoutes registers the query routes on the given group.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	rg.Use(mw.RequestID(), mw.Scope())
	rg.POST("/query", h.ProcessQuery)
	rg.GET("/projects", h.ListProjects)
}
