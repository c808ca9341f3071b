package usecase

import (
	"time"

	"jira-query-agent/internal/augment"
	"jira-query-agent/internal/query"
	"jira-query-agent/internal/query/repository"
	"jira-query-agent/pkg/log"
	"jira-query-agent/pkg/timerange"
)

// Options bounds variant execution and augmentation.
type Options struct {
	MaxConcurrentVariants int
	PerVariantTimeout     time.Duration
	TotalTimeBudget       time.Duration
	MaxRetries            int
	RetryDelay            time.Duration
	AugmentTimeout        time.Duration
	DefaultMaxResults     int
}

type implUseCase struct {
	l         log.Logger
	resolver  *timerange.Resolver
	executor  repository.SearchExecutor
	projects  repository.ProjectRepository
	augmenter augment.Augmenter
	opts      Options
	clock     func() time.Time
}

// New creates the query use case. projects may be nil, in which case
// project-key validation is skipped.
func New(
	l log.Logger,
	resolver *timerange.Resolver,
	executor repository.SearchExecutor,
	projects repository.ProjectRepository,
	augmenter augment.Augmenter,
	opts Options,
) query.UseCase {
	if opts.MaxConcurrentVariants <= 0 {
		opts.MaxConcurrentVariants = 3
	}
	if opts.PerVariantTimeout <= 0 {
		opts.PerVariantTimeout = 15 * time.Second
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 500 * time.Millisecond
	}
	if opts.DefaultMaxResults <= 0 {
		opts.DefaultMaxResults = 50
	}
	if augmenter == nil {
		augmenter = augment.Noop{}
	}
	return &implUseCase{
		l:         l,
		resolver:  resolver,
		executor:  executor,
		projects:  projects,
		augmenter: augmenter,
		opts:      opts,
		clock:     time.Now,
	}
}
