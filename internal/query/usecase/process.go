package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jira-query-agent/internal/model"
	"jira-query-agent/internal/query"
	"jira-query-agent/pkg/timerange"
)

// Process translates one natural-language request into variants, runs
// them, and reconciles the buffers into a single ranked batch.
func (uc *implUseCase) Process(ctx context.Context, sc model.Scope, input query.ProcessInput) (query.ProcessOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return query.ProcessOutput{}, query.ErrEmptyQuery
	}

	if uc.opts.TotalTimeBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.opts.TotalTimeBudget)
		defer cancel()
	}

	ref := input.ReferenceTime
	if ref.IsZero() {
		ref = uc.clock()
	}

	var diags query.Diagnostics

	rng, err := uc.resolver.Resolve(text, ref)
	if err != nil {
		if !errors.Is(err, timerange.ErrAmbiguous) {
			return query.ProcessOutput{}, err
		}
		rng = uc.resolver.FallbackRange(ref)
		diags.DegradedTimeRange = true
		diags.Warnings = append(diags.Warnings, "no time expression recognized, using fallback window")
	}
	diags.TimeRangeLabel = rng.Label

	intent := extractIntent(text)
	if !rng.Start.IsZero() {
		intent.TimeRange = &rng
	}
	if len(intent.ExcludedKeywords) > 0 {
		diags.Warnings = append(diags.Warnings, fmt.Sprintf(
			"exclusion query: not matching on %s", strings.Join(intent.ExcludedKeywords, ", ")))
	}

	intent = uc.augment(ctx, intent, text, &diags)
	uc.validateProjects(ctx, &intent, &diags)

	variants := generateVariants(sc, intent)
	uc.l.Infof(ctx, "query %q expanded into %d variant(s)", text, len(variants))

	limit := input.MaxResults
	if limit <= 0 {
		limit = uc.opts.DefaultMaxResults
	}

	results := uc.runVariants(ctx, variants, limit)
	issues, failures := mergeResults(variants, results, limit)
	diags.FailedVariants = failures

	if len(failures) == len(variants) && len(issues) == 0 {
		return query.ProcessOutput{}, fmt.Errorf("%w: %d variant(s) failed", query.ErrAllVariantsFailed, len(failures))
	}

	return query.ProcessOutput{
		Issues:      issues,
		Variants:    variants,
		Diagnostics: diags,
	}, nil
}

// augment runs the refinement port under its own timeout. Failures only
// warn; the deterministic intent always survives.
func (uc *implUseCase) augment(ctx context.Context, intent query.ParsedIntent, text string, diags *query.Diagnostics) query.ParsedIntent {
	augCtx := ctx
	if uc.opts.AugmentTimeout > 0 {
		var cancel context.CancelFunc
		augCtx, cancel = context.WithTimeout(ctx, uc.opts.AugmentTimeout)
		defer cancel()
	}

	refined, err := uc.augmenter.Augment(augCtx, intent, text)
	if err != nil {
		uc.l.Warnf(ctx, "augmentation skipped: %v", err)
		diags.Warnings = append(diags.Warnings, "query refinement unavailable, using literal interpretation")
		return intent
	}
	return refined
}

// validateProjects demotes project keys the tracker does not know into
// plain keywords so a hallucinated key cannot zero out every variant.
func (uc *implUseCase) validateProjects(ctx context.Context, intent *query.ParsedIntent, diags *query.Diagnostics) {
	if uc.projects == nil || len(intent.ProjectKeys) == 0 {
		return
	}

	known, err := uc.projects.ListProjectKeys(ctx)
	if err != nil {
		uc.l.Warnf(ctx, "project key validation skipped: %v", err)
		diags.Warnings = append(diags.Warnings, "project list unavailable, keys not validated")
		return
	}

	knownSet := make(map[string]struct{}, len(known))
	for _, k := range known {
		knownSet[strings.ToUpper(k)] = struct{}{}
	}

	var kept []string
	for _, key := range intent.ProjectKeys {
		if _, ok := knownSet[strings.ToUpper(key)]; ok {
			kept = append(kept, key)
			continue
		}
		intent.Keywords = append(intent.Keywords, key)
		diags.Warnings = append(diags.Warnings,
			fmt.Sprintf("unknown project %s treated as keyword", key))
	}
	intent.ProjectKeys = kept
}
