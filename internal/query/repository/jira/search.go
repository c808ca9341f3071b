package jira

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"jira-query-agent/internal/query"
	"jira-query-agent/internal/query/repository"
	pkgLog "jira-query-agent/pkg/log"
)

// jiraTimeFormat is the timestamp format Jira returns for updated/created.
const jiraTimeFormat = "2006-01-02T15:04:05.000-0700"

type implSearch struct {
	client *Client
	l      pkgLog.Logger
}

// NewSearchExecutor wraps the Jira client as a repository.SearchExecutor,
// mapping HTTP failures onto the executor error taxonomy.
func NewSearchExecutor(client *Client, l pkgLog.Logger) repository.SearchExecutor {
	return &implSearch{client: client, l: l}
}

func (r *implSearch) Search(ctx context.Context, jqlText string, limit int) ([]query.Issue, error) {
	resp, err := r.client.SearchIssues(ctx, jqlText, limit)
	if err != nil {
		return nil, r.mapError(ctx, err)
	}

	issues := make([]query.Issue, 0, len(resp.Issues))
	for _, raw := range resp.Issues {
		issue := query.Issue{
			Key:     raw.Key,
			Summary: raw.Fields.Summary,
		}
		if raw.Fields.Status != nil {
			issue.Status = raw.Fields.Status.Name
		}
		if raw.Fields.Updated != "" {
			updated, parseErr := parseJiraTime(raw.Fields.Updated)
			if parseErr != nil {
				r.l.Warnf(ctx, "Search: unparseable updated timestamp %q on %s: %v", raw.Fields.Updated, raw.Key, parseErr)
			} else {
				issue.UpdatedAt = updated
			}
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

func (r *implSearch) mapError(ctx context.Context, err error) error {
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
	}

	switch {
	case apiErr.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", repository.ErrInvalidQuery, apiErr.Body)
	case apiErr.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", repository.ErrRateLimited, apiErr.Body)
	default:
		return fmt.Errorf("%w: %v", repository.ErrUnavailable, apiErr)
	}
}

func parseJiraTime(value string) (time.Time, error) {
	if t, err := time.Parse(jiraTimeFormat, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
