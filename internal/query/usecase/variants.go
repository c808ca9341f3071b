package usecase

import (
	"fmt"

	"jira-query-agent/internal/model"
	"jira-query-agent/internal/query"
	"jira-query-agent/pkg/jql"
)

// timeField is the issue field the resolved range constrains.
const timeField = "created"

// floorClause keeps a variant syntactically valid when every other
// constraint is empty.
const floorClause = "project IS NOT EMPTY"

// generateVariants builds the deterministic interpretation set. The
// broadest variant always comes first with rank 0; identical JQL bodies
// are emitted once, first occurrence wins.
func generateVariants(sc model.Scope, intent query.ParsedIntent) []query.QueryVariant {
	account := accountExpr(sc, intent)
	base := baseClauses(intent)

	// Exclusion queries never match on keywords: emitting text ~ for an
	// excluded term would return exactly what the user filtered out.
	keywords := ""
	if len(intent.ExcludedKeywords) == 0 {
		keywords = keywordClause(intent.Keywords)
	}

	var variants []query.QueryVariant
	seen := map[string]struct{}{}
	add := func(tag string, rank int, clauses ...string) {
		body := jql.And(clauses...)
		if body == "" {
			body = floorClause
		}
		text := jql.OrderBy(body, "updated", "DESC")
		if _, dup := seen[text]; dup {
			return
		}
		seen[text] = struct{}{}
		variants = append(variants, query.QueryVariant{
			JQL:             text,
			StrategyTag:     tag,
			SpecificityRank: rank,
		})
	}

	// Broadest interpretation: any relationship between the user and the
	// issue counts as a match.
	broad := append(append([]string{}, base...), roleClause(query.RoleParticipant, account), keywords)
	add("all-roles", 0, broad...)

	roles := intent.Roles.Sorted()
	if intent.Roles.Len() < len(query.AllRoles()) {
		for _, role := range roles {
			clauses := append(append([]string{}, base...), roleClause(role, account), keywords)
			add(fmt.Sprintf("by-%s", roleTag(role)), countDims(clauses), clauses...)
		}
	}

	// Text-only interpretation: the user may not relate to the issue at
	// all, the words alone drive the match.
	if keywords != "" {
		clauses := append(append([]string{}, base...), keywords)
		add("by-text", countDims(clauses), clauses...)
	}

	return variants
}

// countDims counts the constraint dimensions a variant applies; the broad
// catch-all is pinned to rank 0 regardless.
func countDims(clauses []string) int {
	n := 0
	for _, c := range clauses {
		if c != "" {
			n++
		}
	}
	return n
}

// accountExpr returns the JQL expression identifying the caller. A known
// account id is quoted; otherwise the tracker resolves currentUser().
func accountExpr(sc model.Scope, intent query.ParsedIntent) string {
	if !intent.CurrentUser {
		return ""
	}
	if sc.UserID != "" {
		return jql.Quote(sc.UserID)
	}
	return jql.CurrentUser
}

func roleClause(role query.ActorRole, account string) string {
	if account == "" {
		return ""
	}
	switch role {
	case query.RoleAssignee:
		return eqAccount("assignee", account)
	case query.RoleReporter:
		return eqAccount("reporter", account)
	case query.RoleWorklogAuthor:
		return eqAccount("worklogAuthor", account)
	case query.RoleParticipant:
		return jql.Or(
			eqAccount("assignee", account),
			eqAccount("reporter", account),
			eqAccount("worklogAuthor", account),
		)
	}
	return ""
}

// eqAccount skips re-quoting: account is already either a quoted id or
// the currentUser() function.
func eqAccount(field, account string) string {
	return fmt.Sprintf("%s = %s", field, account)
}

func roleTag(role query.ActorRole) string {
	switch role {
	case query.RoleWorklogAuthor:
		return "worklog"
	default:
		return string(role)
	}
}

func baseClauses(intent query.ParsedIntent) []string {
	var clauses []string
	if intent.TimeRange != nil {
		clauses = append(clauses, jql.Between(timeField, intent.TimeRange.Start, intent.TimeRange.End))
	}
	if len(intent.ProjectKeys) > 0 {
		clauses = append(clauses, jql.In("project", intent.ProjectKeys))
	}
	if len(intent.IssueTypes) > 0 {
		clauses = append(clauses, jql.In("issuetype", intent.IssueTypes))
	}
	if len(intent.Statuses) > 0 {
		clauses = append(clauses, jql.In("status", intent.Statuses))
	}
	return clauses
}

// keywordClause ORs a free-text match per keyword; any one hit is enough.
func keywordClause(keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}
	matches := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		matches = append(matches, jql.Contains("text", kw))
	}
	return jql.Or(matches...)
}
