package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"jira-query-agent/config"
	_ "jira-query-agent/docs" // Swagger docs
	"jira-query-agent/internal/augment"
	"jira-query-agent/internal/httpserver"
	queryDelivery "jira-query-agent/internal/query/delivery/rest"
	jiraRepo "jira-query-agent/internal/query/repository/jira"
	"jira-query-agent/internal/query/usecase"
	"jira-query-agent/pkg/llmprovider"
	"jira-query-agent/pkg/log"
	"jira-query-agent/pkg/timerange"
)

// @title       Jira Query Agent API
// @description Natural-language to Jira query translation with multi-variant execution and reconciliation.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Jira Query Agent...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Jira URL: %s", cfg.Jira.BaseURL)

	// 3. Temporal resolver
	resolver, err := timerange.NewResolver(timerange.Config{
		Timezone:            cfg.Locale.Timezone,
		WeekStart:           weekStart(cfg.Locale.WeekStart),
		FiscalQuarterOffset: cfg.Locale.FiscalQuarterOffset,
		FallbackWindowDays:  cfg.Locale.FallbackWindowDays,
	})
	if err != nil {
		logger.Warnf(ctx, "Invalid locale %q, falling back to UTC: %v", cfg.Locale.Timezone, err)
		resolver, _ = timerange.NewResolver(timerange.Config{
			FallbackWindowDays: cfg.Locale.FallbackWindowDays,
		})
	}

	// 4. Jira repository
	jiraClient, err := jiraRepo.NewClient(jiraRepo.Config{
		BaseURL:           cfg.Jira.BaseURL,
		Email:             cfg.Jira.Email,
		APIToken:          cfg.Jira.APIToken,
		BearerToken:       cfg.Jira.BearerToken,
		RequestsPerSecond: cfg.Jira.RequestsPerSecond,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize Jira client: ", err)
		return
	}
	executor := jiraRepo.NewSearchExecutor(jiraClient, logger)
	projects := jiraRepo.NewProjectRepository(jiraClient, cfg.Jira.ProjectCacheTTL, logger)

	// 5. Augmentation port (optional: missing providers degrade to no-op)
	augmenter := buildAugmenter(ctx, logger, &cfg.LLM)

	// 6. Query UseCase
	queryUC := usecase.New(logger, resolver, executor, projects, augmenter, usecase.Options{
		MaxConcurrentVariants: cfg.Engine.MaxConcurrentVariants,
		PerVariantTimeout:     cfg.Engine.PerVariantTimeout,
		TotalTimeBudget:       cfg.Engine.TotalTimeBudget,
		MaxRetries:            cfg.Engine.MaxRetries,
		RetryDelay:            cfg.Engine.RetryDelay,
		AugmentTimeout:        cfg.Engine.AugmentTimeout,
		DefaultMaxResults:     cfg.Jira.MaxResults,
	})

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:       logger,
		Port:         cfg.HTTPServer.Port,
		Mode:         cfg.HTTPServer.Mode,
		Environment:  cfg.Environment.Name,
		QueryHandler: queryDelivery.New(logger, queryUC),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// buildAugmenter wires the LLM provider chain when at least one provider
// is configured; otherwise the port stays a no-op.
func buildAugmenter(ctx context.Context, logger log.Logger, cfg *config.LLMConfig) augment.Augmenter {
	if len(cfg.Providers) == 0 {
		logger.Info(ctx, "No LLM providers configured, query refinement disabled")
		return augment.Noop{}
	}

	providers, err := llmprovider.InitializeProviders(cfg)
	if err != nil {
		logger.Warnf(ctx, "LLM providers unavailable, query refinement disabled: %v", err)
		return augment.Noop{}
	}

	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      parseDuration(cfg.RetryDelay, time.Second),
		MaxTotalTimeout: parseDuration(cfg.MaxTotalTimeout, 30*time.Second),
	}, logger)

	logger.Infof(ctx, "Query refinement enabled with %d LLM provider(s)", len(providers))
	return augment.NewLLM(manager, logger)
}

func weekStart(name string) time.Weekday {
	if strings.EqualFold(name, "sunday") {
		return time.Sunday
	}
	return time.Monday
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return fallback
}
