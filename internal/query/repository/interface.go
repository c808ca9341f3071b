package repository

import (
	"context"
	"errors"

	"jira-query-agent/internal/query"
)

// Executor errors. The usecase retry policy distinguishes transient
// conditions (rate limit, unavailable) from permanent ones (invalid query).
var (
	ErrInvalidQuery = errors.New("invalid query syntax")
	ErrRateLimited  = errors.New("rate limited by tracker")
	ErrUnavailable  = errors.New("tracker unavailable")
)

// SearchExecutor executes one JQL query against the tracker. It must be
// safe to call concurrently.
type SearchExecutor interface {
	Search(ctx context.Context, jqlText string, limit int) ([]query.Issue, error)
}

// ProjectRepository lists projects visible to the service account.
type ProjectRepository interface {
	ListProjectKeys(ctx context.Context) ([]string, error)
}
