package query

import (
	"context"

	"jira-query-agent/internal/model"
)

// UseCase defines the business logic interface for the query domain.
type UseCase interface {
	// Process translates a natural-language request into JQL variants,
	// executes them, and returns the reconciled ranked result.
	Process(ctx context.Context, sc model.Scope, input ProcessInput) (ProcessOutput, error)

	// Projects lists the project keys visible to the service account.
	Projects(ctx context.Context) ([]string, error)
}
