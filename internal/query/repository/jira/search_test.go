package jira_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jira-query-agent/internal/query/repository"
	"jira-query-agent/internal/query/repository/jira"
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

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/rest/api/2/search", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			JQL string `json:"jql"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		switch {
		case strings.Contains(req.JQL, "bad-syntax"):
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"errorMessages":["Unable to parse query"]}`))
		case strings.Contains(req.JQL, "throttle"):
			w.WriteHeader(http.StatusTooManyRequests)
		case strings.Contains(req.JQL, "boom"):
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]any{
				"total": 2,
				"issues": []map[string]any{
					{
						"key": "CHART-12",
						"fields": map[string]any{
							"summary": "排行榜改版",
							"status":  map[string]any{"name": "Done"},
							"updated": "2025-06-10T09:30:00.000+0800",
						},
					},
					{
						"key": "CHART-7",
						"fields": map[string]any{
							"summary": "Dashboard export",
							"status":  map[string]any{"name": "In Progress"},
							"updated": "2025-05-01T10:00:00.000+0800",
						},
					},
				},
			})
		}
	})

	mux.HandleFunc("/rest/api/2/project", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode([]map[string]string{
			{"key": "CHART", "name": "Charts"},
			{"key": "KFC", "name": "KFC App"},
		})
	})

	return httptest.NewServer(mux)
}

func newTestClient(t *testing.T, baseURL string) *jira.Client {
	t.Helper()
	client, err := jira.NewClient(jira.Config{
		BaseURL:           baseURL,
		Email:             "svc@example.com",
		APIToken:          "token",
		RequestsPerSecond: 100,
	})
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	return client
}

func TestNewClientValidation(t *testing.T) {
	if _, err := jira.NewClient(jira.Config{}); err == nil {
		t.Fatalf("expected error for missing base URL")
	}
	if _, err := jira.NewClient(jira.Config{BaseURL: "http://jira"}); err == nil {
		t.Fatalf("expected error for missing credentials")
	}
	if _, err := jira.NewClient(jira.Config{BaseURL: "http://jira", BearerToken: "pat"}); err != nil {
		t.Fatalf("unexpected error for bearer token config: %v", err)
	}
}

func TestSearch(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	executor := jira.NewSearchExecutor(newTestClient(t, ts.URL), &mockLogger{})
	ctx := context.Background()

	t.Run("Maps issues and timestamps", func(t *testing.T) {
		issues, err := executor.Search(ctx, "project = 'CHART'", 50)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(issues) != 2 {
			t.Fatalf("expected 2 issues, got %d", len(issues))
		}
		if issues[0].Key != "CHART-12" || issues[0].Status != "Done" {
			t.Errorf("unexpected first issue: %+v", issues[0])
		}
		want := time.Date(2025, 6, 10, 9, 30, 0, 0, time.FixedZone("", 8*3600))
		if !issues[0].UpdatedAt.Equal(want) {
			t.Errorf("updated = %v, want %v", issues[0].UpdatedAt, want)
		}
	})

	t.Run("Invalid query", func(t *testing.T) {
		_, err := executor.Search(ctx, "bad-syntax ~~", 50)
		if !errors.Is(err, repository.ErrInvalidQuery) {
			t.Errorf("expected ErrInvalidQuery, got %v", err)
		}
	})

	t.Run("Rate limited", func(t *testing.T) {
		_, err := executor.Search(ctx, "throttle", 50)
		if !errors.Is(err, repository.ErrRateLimited) {
			t.Errorf("expected ErrRateLimited, got %v", err)
		}
	})

	t.Run("Server error maps to unavailable", func(t *testing.T) {
		_, err := executor.Search(ctx, "boom", 50)
		if !errors.Is(err, repository.ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	})
}

func TestListProjectKeysCaches(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/2/project", func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode([]map[string]string{{"key": "CHART"}})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	repo := jira.NewProjectRepository(newTestClient(t, ts.URL), time.Minute, &mockLogger{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		keys, err := repo.ListProjectKeys(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(keys) != 1 || keys[0] != "CHART" {
			t.Fatalf("unexpected keys: %v", keys)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", calls)
	}
}
