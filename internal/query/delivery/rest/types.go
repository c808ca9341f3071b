package rest

import (
	"jira-query-agent/internal/query"
)

// processQueryReq is the POST /query request body.
type processQueryReq struct {
	Query      string `json:"query" binding:"required"`
	MaxResults int    `json:"max_results"`
}

// processQueryResp mirrors query.ProcessOutput with stable JSON names.
type processQueryResp struct {
	Issues      []query.Issue        `json:"issues"`
	Variants    []query.QueryVariant `json:"variants"`
	Diagnostics query.Diagnostics    `json:"diagnostics"`
}

type listProjectsResp struct {
	Projects []string `json:"projects"`
}
