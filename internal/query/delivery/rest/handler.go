package rest

import (
	"errors"

	"github.com/gin-gonic/gin"

	"jira-query-agent/internal/middleware"
	"jira-query-agent/internal/query"
	pkgResponse "jira-query-agent/pkg/response"
)

// ProcessQuery translates one natural-language query and returns the
// reconciled issue batch.
// @Summary Process natural-language query
// @Description Translate a natural-language request into tracker query variants, execute them, and return a deduplicated ranked batch
// @Tags Query
// @Accept json
// @Produce json
// @Param X-Account-Id header string false "Tracker account id; defaults to the service account's currentUser()"
// @Param body body processQueryReq true "Query request"
// @Success 200 {object} pkgResponse.Resp{data=processQueryResp}
// @Failure 400 {object} pkgResponse.Resp "Empty or unbindable query"
// @Failure 503 {object} pkgResponse.Resp "Every query variant failed"
// @Router /api/v1/query [post]
func (h *handler) ProcessQuery(c *gin.Context) {
	ctx := c.Request.Context()

	var req processQueryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "query handler: bad request body: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	sc := middleware.GetScope(c)
	out, err := h.uc.Process(ctx, sc, query.ProcessInput{
		Text:       req.Query,
		MaxResults: req.MaxResults,
	})
	if err != nil {
		switch {
		case errors.Is(err, query.ErrEmptyQuery):
			pkgResponse.Error(c, err, nil)
		case errors.Is(err, query.ErrAllVariantsFailed):
			h.l.Errorf(ctx, "query handler: all variants failed: %v", err)
			pkgResponse.ServiceUnavailable(c, err)
		default:
			h.l.Errorf(ctx, "query handler: process failed: %v", err)
			pkgResponse.InternalError(c, err)
		}
		return
	}

	pkgResponse.OK(c, processQueryResp{
		Issues:      out.Issues,
		Variants:    out.Variants,
		Diagnostics: out.Diagnostics,
	})
}

// ListProjects returns the project keys visible to the service account.
// @Summary List project keys
// @Description List the tracker project keys the service account can see
// @Tags Query
// @Produce json
// @Success 200 {object} pkgResponse.Resp{data=listProjectsResp}
// @Failure 500 {object} pkgResponse.Resp
// @Router /api/v1/projects [get]
func (h *handler) ListProjects(c *gin.Context) {
	ctx := c.Request.Context()

	keys, err := h.uc.Projects(ctx)
	if err != nil {
		h.l.Errorf(ctx, "query handler: list projects failed: %v", err)
		pkgResponse.InternalError(c, err)
		return
	}

	pkgResponse.OK(c, listProjectsResp{Projects: keys})
}
