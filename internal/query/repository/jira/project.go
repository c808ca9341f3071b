package jira

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"jira-query-agent/internal/query/repository"
	pkgLog "jira-query-agent/pkg/log"
)

const projectCacheKey = "projects"

type implProjects struct {
	client *Client
	l      pkgLog.Logger
	cache  *expirable.LRU[string, []string]
}

// NewProjectRepository wraps the Jira client as a repository.ProjectRepository.
// Project keys change rarely, so the listing is cached with a TTL to keep
// per-request key validation off the wire.
func NewProjectRepository(client *Client, ttl time.Duration, l pkgLog.Logger) repository.ProjectRepository {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &implProjects{
		client: client,
		l:      l,
		cache:  expirable.NewLRU[string, []string](1, nil, ttl),
	}
}

func (r *implProjects) ListProjectKeys(ctx context.Context) ([]string, error) {
	if keys, ok := r.cache.Get(projectCacheKey); ok {
		return keys, nil
	}

	projects, err := r.client.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(projects))
	for _, p := range projects {
		keys = append(keys, p.Key)
	}
	r.cache.Add(projectCacheKey, keys)
	r.l.Debugf(ctx, "ListProjectKeys: cached %d project keys", len(keys))
	return keys, nil
}
