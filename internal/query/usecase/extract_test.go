package usecase

import (
	"reflect"
	"testing"

	"jira-query-agent/internal/query"
)

func TestExtractIntentRoles(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantRoles []query.ActorRole
	}{
		{
			name:      "no verb signal means every role",
			text:      "2025 Q1 的 CHART 排行榜",
			wantRoles: []query.ActorRole{query.RoleAssignee, query.RoleReporter, query.RoleWorklogAuthor, query.RoleParticipant},
		},
		{
			name:      "assigned in chinese",
			text:      "指派給我的任務",
			wantRoles: []query.ActorRole{query.RoleAssignee},
		},
		{
			name:      "reported in english",
			text:      "issues I reported last week",
			wantRoles: []query.ActorRole{query.RoleReporter},
		},
		{
			name:      "worklog in chinese",
			text:      "我上個月登錄工時的任務",
			wantRoles: []query.ActorRole{query.RoleWorklogAuthor},
		},
		{
			name:      "multiple signals",
			text:      "我建立或指派給我的 bug",
			wantRoles: []query.ActorRole{query.RoleAssignee, query.RoleReporter},
		},
		{
			name:      "participation",
			text:      "In the KFC project, I participated in tasks",
			wantRoles: []query.ActorRole{query.RoleParticipant},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := extractIntent(tt.text)
			if intent.Roles.Len() != len(tt.wantRoles) {
				t.Fatalf("roles = %v, want %v", intent.Roles.Sorted(), tt.wantRoles)
			}
			for _, r := range tt.wantRoles {
				if !intent.Roles.Has(r) {
					t.Errorf("missing role %s in %v", r, intent.Roles.Sorted())
				}
			}
		})
	}
}

func TestExtractIntentEntities(t *testing.T) {
	t.Run("project key from chinese marker", func(t *testing.T) {
		intent := extractIntent("在 KFC 專案中的工作")
		if len(intent.ProjectKeys) != 1 || intent.ProjectKeys[0] != "KFC" {
			t.Errorf("project keys = %v, want [KFC]", intent.ProjectKeys)
		}
	})

	t.Run("project key from english marker", func(t *testing.T) {
		intent := extractIntent("Show me tasks in the ABC project")
		if len(intent.ProjectKeys) != 1 || intent.ProjectKeys[0] != "ABC" {
			t.Errorf("project keys = %v, want [ABC]", intent.ProjectKeys)
		}
	})

	t.Run("issue type and status aliases", func(t *testing.T) {
		intent := extractIntent("本週完成的 bug")
		if len(intent.IssueTypes) != 1 || intent.IssueTypes[0] != "Bug" {
			t.Errorf("issue types = %v, want [Bug]", intent.IssueTypes)
		}
		if len(intent.Statuses) != 1 || intent.Statuses[0] != "Done" {
			t.Errorf("statuses = %v, want [Done]", intent.Statuses)
		}
	})

	t.Run("keywords keep original casing", func(t *testing.T) {
		intent := extractIntent("跟 iOS 有關的排行榜")
		assertKeywords(t, intent.Keywords, "iOS", "排行榜")
	})

	t.Run("ranking words are not keywords", func(t *testing.T) {
		intent := extractIntent("跟 iOS 有關且處理最久的")
		assertKeywords(t, intent.Keywords, "iOS")
	})

	t.Run("temporal text does not leak into keywords", func(t *testing.T) {
		intent := extractIntent("2025 Q1 排行榜")
		assertKeywords(t, intent.Keywords, "排行榜")
	})

	t.Run("self reference sets current user", func(t *testing.T) {
		for _, text := range []string{"我的任務", "tasks assigned to me", "issues I reported"} {
			if !extractIntent(text).CurrentUser {
				t.Errorf("%q did not set current user", text)
			}
		}
		if extractIntent("CHART 專案的排行榜").CurrentUser {
			t.Error("no self reference but current user set")
		}
	})

	t.Run("exclusion phrase flips keywords in chinese", func(t *testing.T) {
		intent := extractIntent("排行榜以外的工作")
		assertKeywords(t, intent.Keywords)
		assertKeywords(t, intent.ExcludedKeywords, "排行榜")
	})

	t.Run("exclusion phrase flips keywords in english", func(t *testing.T) {
		intent := extractIntent("my tasks except billing")
		assertKeywords(t, intent.Keywords)
		assertKeywords(t, intent.ExcludedKeywords, "billing")
	})

	t.Run("project key not duplicated as keyword", func(t *testing.T) {
		intent := extractIntent("KFC 專案的排行榜")
		for _, kw := range intent.Keywords {
			if kw == "KFC" {
				t.Errorf("project key leaked into keywords: %v", intent.Keywords)
			}
		}
	})
}

func TestBuildCJKStopsDeterministic(t *testing.T) {
	// Map iteration order differs between calls; the built list must not.
	first := buildCJKStops()
	for i := 0; i < 20; i++ {
		if !reflect.DeepEqual(buildCJKStops(), first) {
			t.Fatal("stop word order depends on map iteration")
		}
	}
	for i := 1; i < len(first); i++ {
		prev, cur := first[i-1], first[i]
		if utfLen(prev) < utfLen(cur) {
			t.Fatalf("%q sorted after shorter %q", cur, prev)
		}
		if utfLen(prev) == utfLen(cur) && prev > cur {
			t.Fatalf("equal-length stops %q, %q out of order", prev, cur)
		}
	}
}

func assertKeywords(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("keywords = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keywords[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
