package usecase

import (
	"context"

	"jira-query-agent/internal/query/repository"
)

// Projects lists the tracker project keys visible to the service account.
func (uc *implUseCase) Projects(ctx context.Context) ([]string, error) {
	if uc.projects == nil {
		return nil, repository.ErrUnavailable
	}
	return uc.projects.ListProjectKeys(ctx)
}
