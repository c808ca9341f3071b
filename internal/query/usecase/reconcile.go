package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"jira-query-agent/internal/query"
	"jira-query-agent/internal/query/repository"
)

// variantResult is the isolated outcome of one variant run. Buffers are
// never shared between goroutines; merging happens after all settle.
type variantResult struct {
	issues []query.Issue
	err    error
}

// runVariants executes every variant under bounded concurrency and
// returns one result per variant, index-aligned.
func (uc *implUseCase) runVariants(ctx context.Context, variants []query.QueryVariant, limit int) []variantResult {
	results := make([]variantResult, len(variants))
	sem := make(chan struct{}, uc.opts.MaxConcurrentVariants)

	var wg sync.WaitGroup
	for i, v := range variants {
		wg.Add(1)
		go func(i int, v query.QueryVariant) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			issues, err := uc.runVariant(ctx, v, limit)
			results[i] = variantResult{issues: issues, err: err}
		}(i, v)
	}
	wg.Wait()
	return results
}

// runVariant runs one variant with a per-variant timeout, retrying only
// transient failures. Invalid query text never retries.
func (uc *implUseCase) runVariant(ctx context.Context, v query.QueryVariant, limit int) ([]query.Issue, error) {
	var lastErr error
	for attempt := 0; attempt <= uc.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := uc.opts.RetryDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, uc.opts.PerVariantTimeout)
		issues, err := uc.executor.Search(attemptCtx, v.JQL, limit)
		cancel()
		if err == nil {
			return issues, nil
		}
		lastErr = err
		if !retryable(err) {
			break
		}
		uc.l.Warnf(ctx, "variant %s attempt %d failed, retrying: %v", v.StrategyTag, attempt+1, err)
	}
	return nil, lastErr
}

func retryable(err error) bool {
	return errors.Is(err, repository.ErrRateLimited) || errors.Is(err, repository.ErrUnavailable)
}

// mergeResults reconciles per-variant buffers in variant order: the first
// variant to return an issue supplies its fields, later hits only add
// their strategy tag to MatchedBy. Ordering is corroboration count desc,
// then most recently updated, then key for a stable tie break.
func mergeResults(variants []query.QueryVariant, results []variantResult, limit int) ([]query.Issue, []query.VariantFailure) {
	merged := map[string]*query.Issue{}
	tags := map[string]map[string]struct{}{}
	var order []string
	var failures []query.VariantFailure

	for i, res := range results {
		if res.err != nil {
			failures = append(failures, query.VariantFailure{
				StrategyTag: variants[i].StrategyTag,
				Reason:      failureReason(res.err),
			})
			continue
		}
		for _, issue := range res.issues {
			if _, ok := merged[issue.Key]; !ok {
				copied := issue
				copied.MatchedBy = nil
				merged[issue.Key] = &copied
				tags[issue.Key] = map[string]struct{}{}
				order = append(order, issue.Key)
			}
			tags[issue.Key][variants[i].StrategyTag] = struct{}{}
		}
	}

	issues := make([]query.Issue, 0, len(order))
	for _, key := range order {
		issue := *merged[key]
		for tag := range tags[key] {
			issue.MatchedBy = append(issue.MatchedBy, tag)
		}
		sort.Strings(issue.MatchedBy)
		issues = append(issues, issue)
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if len(issues[i].MatchedBy) != len(issues[j].MatchedBy) {
			return len(issues[i].MatchedBy) > len(issues[j].MatchedBy)
		}
		if !issues[i].UpdatedAt.Equal(issues[j].UpdatedAt) {
			return issues[i].UpdatedAt.After(issues[j].UpdatedAt)
		}
		return issues[i].Key < issues[j].Key
	})

	if limit > 0 && len(issues) > limit {
		issues = issues[:limit]
	}
	return issues, failures
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, repository.ErrInvalidQuery):
		return "invalid query"
	case errors.Is(err, repository.ErrRateLimited):
		return "rate limited"
	case errors.Is(err, repository.ErrUnavailable):
		return "tracker unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return err.Error()
	}
}
