package usecase

import (
	"context"

	"jira-query-agent/internal/query"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

type mockExecutor struct {
	searchFunc func(ctx context.Context, jqlText string, limit int) ([]query.Issue, error)
}

func (m *mockExecutor) Search(ctx context.Context, jqlText string, limit int) ([]query.Issue, error) {
	return m.searchFunc(ctx, jqlText, limit)
}

type mockProjects struct {
	listFunc func(ctx context.Context) ([]string, error)
}

func (m *mockProjects) ListProjectKeys(ctx context.Context) ([]string, error) {
	return m.listFunc(ctx)
}

type mockAugmenter struct {
	augmentFunc func(ctx context.Context, intent query.ParsedIntent, raw string) (query.ParsedIntent, error)
}

func (m *mockAugmenter) Augment(ctx context.Context, intent query.ParsedIntent, raw string) (query.ParsedIntent, error) {
	if m.augmentFunc == nil {
		return intent, nil
	}
	return m.augmentFunc(ctx, intent, raw)
}
