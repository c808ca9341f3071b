package augment

import (
	"context"
	"errors"
	"testing"

	"jira-query-agent/internal/query"
	"jira-query-agent/pkg/llmprovider"
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

type stubProvider struct {
	text string
	err  error
}

func (p *stubProvider) Complete(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &llmprovider.Response{Text: p.text, ProviderName: "stub", ModelName: "stub-1"}, nil
}

func (p *stubProvider) Name() string  { return "stub" }
func (p *stubProvider) Model() string { return "stub-1" }

func newManager(p llmprovider.Provider) *llmprovider.Manager {
	return llmprovider.NewManager([]llmprovider.Provider{p},
		&llmprovider.Config{RetryAttempts: 1}, &mockLogger{})
}

func TestNoopIsIdentity(t *testing.T) {
	intent := query.ParsedIntent{Keywords: []string{"iOS"}, CurrentUser: true}
	got, err := Noop{}.Augment(context.Background(), intent, "whatever")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Keywords) != 1 || got.Keywords[0] != "iOS" || !got.CurrentUser {
		t.Errorf("noop modified intent: %+v", got)
	}
}

func TestAugmentMergesAdditively(t *testing.T) {
	a := NewLLM(newManager(&stubProvider{text: "```json\n" +
		`{"keywords":["排行榜"],"related_keywords":["dashboard","iOS"],"project":"chart","issue_types":["Bug"],"statuses":[]}` +
		"\n```"}), &mockLogger{})

	intent := query.ParsedIntent{
		Keywords:    []string{"iOS"},
		Roles:       query.NewRoleSet(query.RoleAssignee),
		CurrentUser: true,
	}

	got, err := a.Augment(context.Background(), intent, "跟 iOS 有關的排行榜工作")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// "iOS" already present; 排行榜 and dashboard appended in order.
	wantKeywords := []string{"iOS", "排行榜", "dashboard"}
	if len(got.Keywords) != len(wantKeywords) {
		t.Fatalf("keywords = %v, want %v", got.Keywords, wantKeywords)
	}
	for i, kw := range wantKeywords {
		if got.Keywords[i] != kw {
			t.Errorf("keywords[%d] = %q, want %q", i, got.Keywords[i], kw)
		}
	}

	if len(got.ProjectKeys) != 1 || got.ProjectKeys[0] != "CHART" {
		t.Errorf("project keys = %v, want [CHART]", got.ProjectKeys)
	}
	if len(got.IssueTypes) != 1 || got.IssueTypes[0] != "Bug" {
		t.Errorf("issue types = %v", got.IssueTypes)
	}

	// User-owned fields untouched.
	if !got.CurrentUser || !got.Roles.Has(query.RoleAssignee) || got.Roles.Len() != 1 {
		t.Errorf("augmentation touched user-stated constraints: %+v", got)
	}
}

func TestAugmentDoesNotOverrideProject(t *testing.T) {
	a := NewLLM(newManager(&stubProvider{text: `{"project":"OTHER"}`}), &mockLogger{})

	intent := query.ParsedIntent{ProjectKeys: []string{"KFC"}}
	got, err := a.Augment(context.Background(), intent, "KFC 專案")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.ProjectKeys) != 1 || got.ProjectKeys[0] != "KFC" {
		t.Errorf("user-stated project was replaced: %v", got.ProjectKeys)
	}
}

func TestAugmentFailureReturnsOriginalIntent(t *testing.T) {
	a := NewLLM(newManager(&stubProvider{err: errors.New("boom")}), &mockLogger{})

	intent := query.ParsedIntent{Keywords: []string{"iOS"}}
	got, err := a.Augment(context.Background(), intent, "iOS")
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(got.Keywords) != 1 || got.Keywords[0] != "iOS" {
		t.Errorf("intent changed on failure: %+v", got)
	}
}

func TestAugmentUnparseableJSON(t *testing.T) {
	a := NewLLM(newManager(&stubProvider{text: "not json"}), &mockLogger{})

	intent := query.ParsedIntent{Keywords: []string{"iOS"}}
	if _, err := a.Augment(context.Background(), intent, "iOS"); err == nil {
		t.Fatalf("expected error for unparseable JSON")
	}
}
