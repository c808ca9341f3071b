package augment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jira-query-agent/internal/query"
	"jira-query-agent/pkg/llmprovider"
	pkgLog "jira-query-agent/pkg/log"
)

type implLLM struct {
	manager *llmprovider.Manager
	l       pkgLog.Logger
}

// NewLLM creates an augmenter backed by the LLM provider chain.
func NewLLM(manager *llmprovider.Manager, l pkgLog.Logger) Augmenter {
	return &implLLM{manager: manager, l: l}
}

// refinement is the JSON shape the model is asked to return.
type refinement struct {
	Keywords        []string `json:"keywords"`
	RelatedKeywords []string `json:"related_keywords"`
	Project         string   `json:"project"`
	IssueTypes      []string `json:"issue_types"`
	Statuses        []string `json:"statuses"`
}

func (a *implLLM) Augment(ctx context.Context, intent query.ParsedIntent, rawPhrase string) (query.ParsedIntent, error) {
	resp, err := a.manager.Complete(ctx, &llmprovider.Request{
		System:      SystemPromptRefine,
		Prompt:      fmt.Sprintf(PromptRefineTemplate, rawPhrase, strings.Join(intent.Keywords, ", ")),
		Temperature: 0,
		MaxTokens:   512,
	})
	if err != nil {
		return intent, fmt.Errorf("augmentation completion failed: %w", err)
	}

	var ref refinement
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Text)), &ref); err != nil {
		return intent, fmt.Errorf("augmentation returned unparseable JSON: %w", err)
	}

	a.l.Debugf(ctx, "Augment: provider=%s keywords=%d related=%d project=%q",
		resp.ProviderName, len(ref.Keywords), len(ref.RelatedKeywords), ref.Project)

	return mergeRefinement(intent, ref), nil
}

// mergeRefinement applies a refinement additively. Roles, time range, and
// the current-user flag belong to the user and are never touched here.
func mergeRefinement(intent query.ParsedIntent, ref refinement) query.ParsedIntent {
	for _, kw := range append(ref.Keywords, ref.RelatedKeywords...) {
		kw = strings.TrimSpace(kw)
		if kw != "" && !containsFold(intent.Keywords, kw) {
			intent.Keywords = append(intent.Keywords, kw)
		}
	}

	if ref.Project != "" && len(intent.ProjectKeys) == 0 {
		intent.ProjectKeys = []string{strings.ToUpper(ref.Project)}
	}

	for _, it := range ref.IssueTypes {
		if it = strings.TrimSpace(it); it != "" && !containsFold(intent.IssueTypes, it) {
			intent.IssueTypes = append(intent.IssueTypes, it)
		}
	}
	for _, st := range ref.Statuses {
		if st = strings.TrimSpace(st); st != "" && !containsFold(intent.Statuses, st) {
			intent.Statuses = append(intent.Statuses, st)
		}
	}

	return intent
}

// stripCodeFence removes a surrounding ```json fence if the model added one.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	lines = lines[1:]
	if strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
