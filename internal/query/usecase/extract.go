package usecase

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"jira-query-agent/internal/query"
)

// Deterministic entity extraction. The augmentation port may later enrich
// what is extracted here, but everything below works without any LLM.

var (
	// "KFC 專案", "專案 KFC", "in the KFC project", "KFC project"
	reProjectCJK   = regexp.MustCompile(`(?:在\s*)?([A-Za-z][A-Za-z0-9]{1,9})\s*(?:專案|项目|項目)|(?:專案|项目|項目)\s*([A-Za-z][A-Za-z0-9]{1,9})`)
	reProjectEN    = regexp.MustCompile(`(?i)(?:in\s+the\s+)?([A-Za-z][A-Za-z0-9]{1,9})\s+project\b|\bproject\s+([A-Za-z][A-Za-z0-9]{1,9})`)
	reUpperToken   = regexp.MustCompile(`\b[A-Z][A-Z0-9]{1,9}\b`)
	reASCIIWord    = regexp.MustCompile(`[A-Za-z][A-Za-z0-9_.-]*`)
	reCJKRun       = regexp.MustCompile(`[\p{Han}]+`)
	reSelfEN       = regexp.MustCompile(`(?i)\b(i|me|my|mine)\b`)
	reTemporalText = regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}(?:\s*(?:~|to|到)\s*\d{4}-\d{1,2}-\d{1,2})?|(?:\d{4}\s*)?[Qq][1-4](?:\s*\d{4})?|\d{4}\s*年\s*\d{1,2}\s*月|\d{4}-\d{1,2}|\d{1,2}\s*月|\d{4}\s*年|\b\d{4}\b|今天|昨天|上上週|這週|本週|上週|這個月|本月|上個月|上季|本季|今年|本年|去年|today|yesterday|this week|last week|this month|last month|this quarter|last quarter|this year|last year`)
)

// roleSignals maps phrase fragments to the role they assert. Checked in
// order; a phrase can assert several roles.
var roleSignals = []struct {
	needles []string
	role    query.ActorRole
}{
	{[]string{"指派", "分配", "負責", "assigned"}, query.RoleAssignee},
	{[]string{"完成", "completed", "resolved"}, query.RoleAssignee},
	{[]string{"回報", "報告", "建立", "創建", "開的", "reported", "created"}, query.RoleReporter},
	{[]string{"工時", "登錄時間", "logged", "worklog"}, query.RoleWorklogAuthor},
	{[]string{"參與", "participated", "involved", "worked on"}, query.RoleParticipant},
}

var issueTypeAliases = []struct {
	needles []string
	value   string
}{
	{[]string{"bug", "錯誤", "缺陷", "修復"}, "Bug"},
	{[]string{"story", "故事"}, "Story"},
	{[]string{"epic", "史詩"}, "Epic"},
	{[]string{"task", "任務", "工作項目"}, "Task"},
}

var statusAliases = []struct {
	needles []string
	value   string
}{
	{[]string{"完成", "done"}, "Done"},
	{[]string{"進行中", "in progress"}, "In Progress"},
	{[]string{"待辦", "to do", "todo"}, "To Do"},
}

// exclusionMarkers flag a negative query ("排行榜以外的工作"): the terms
// around the marker describe what the user does NOT want.
var exclusionMarkers = []string{"以外", "除了", "不包括", "不包含", "excluding", "except"}

// Noise that never carries search meaning: query verbs, self references,
// generic nouns, connectives, and ranking words.
var stopWords = map[string]struct{}{
	"找": {}, "搜尋": {}, "查詢": {}, "查": {}, "列出": {}, "顯示": {},
	"我": {}, "我的": {}, "我做": {}, "幫我": {}, "請": {},
	"的": {}, "了": {}, "中": {}, "跟": {}, "和": {}, "與": {}, "且": {},
	"有關": {}, "相關": {}, "關於": {}, "以外": {}, "除了": {}, "不包括": {}, "不包含": {},
	"專案": {}, "項目": {}, "任務": {}, "工作": {}, "事項": {},
	"search": {}, "find": {}, "show": {}, "list": {}, "get": {},
	"me": {}, "my": {}, "i": {}, "the": {}, "a": {}, "an": {}, "in": {},
	"of": {}, "on": {}, "to": {}, "for": {}, "and": {}, "or": {}, "with": {},
	"all": {}, "tasks": {}, "task": {}, "issues": {}, "issue": {},
	"tickets": {}, "ticket": {}, "project": {}, "projects": {},
	"assigned": {}, "reported": {}, "created": {}, "logged": {},
	"worklog": {}, "participated": {}, "involved": {},
	"excluding": {}, "except": {},
	"指派": {}, "分配": {}, "負責": {}, "回報": {}, "報告": {},
	"建立": {}, "創建": {}, "參與": {}, "工時": {},
}

// Ranking words describe ordering, not content, and must never become
// keywords. Longer phrases come first so stripping "最久" cannot leave
// "處理" behind.
var sortWords = []string{
	"最長時間", "處理最久", "持續最久",
	"最久", "最新", "最近", "最早",
	"latest", "newest", "oldest", "longest",
}

// extractIntent derives everything except the time range, which the
// caller resolves separately.
func extractIntent(text string) query.ParsedIntent {
	lower := strings.ToLower(text)

	intent := query.ParsedIntent{
		Roles:       query.NewRoleSet(),
		CurrentUser: strings.Contains(text, "我") || reSelfEN.MatchString(text),
	}

	for _, sig := range roleSignals {
		if containsAnyFold(lower, sig.needles) {
			intent.Roles.Add(sig.role)
		}
	}
	if intent.Roles.Len() == 0 {
		intent.Roles = query.AllRoles()
	}

	for _, alias := range issueTypeAliases {
		if containsAnyFold(lower, alias.needles) {
			intent.IssueTypes = append(intent.IssueTypes, alias.value)
		}
	}
	for _, alias := range statusAliases {
		if containsAnyFold(lower, alias.needles) {
			intent.Statuses = append(intent.Statuses, alias.value)
		}
	}

	if key := extractProjectKey(text); key != "" {
		intent.ProjectKeys = []string{key}
	}

	intent.Keywords = extractKeywords(text, intent.ProjectKeys)

	// A negative phrase flips the keywords: "排行榜以外" means the match
	// must not be driven by 排行榜. Searched terms move to the excluded
	// list and keyword matching is suppressed downstream.
	if containsAnyFold(lower, exclusionMarkers) {
		intent.ExcludedKeywords = intent.Keywords
		intent.Keywords = nil
	}
	return intent
}

// extractProjectKey pulls the core project token, without the "project"
// or "專案" marker itself.
func extractProjectKey(text string) string {
	for _, re := range []*regexp.Regexp{reProjectCJK, reProjectEN} {
		if m := re.FindStringSubmatch(text); m != nil {
			for _, g := range m[1:] {
				if g != "" {
					return strings.ToUpper(g)
				}
			}
		}
	}
	return ""
}

// extractKeywords keeps content-bearing tokens with original casing.
// Temporal expressions, stop words, ranking words, and the already
// captured project key are removed first.
func extractKeywords(text string, projectKeys []string) []string {
	cleaned := reTemporalText.ReplaceAllString(text, " ")
	for _, w := range sortWords {
		cleaned = strings.ReplaceAll(cleaned, w, " ")
	}

	var out []string
	seen := map[string]struct{}{}
	add := func(tok string) {
		if tok == "" || utfLen(tok) < 2 {
			return
		}
		lower := strings.ToLower(tok)
		if _, stop := stopWords[lower]; stop {
			return
		}
		for _, key := range projectKeys {
			if strings.EqualFold(tok, key) {
				return
			}
		}
		if _, dup := seen[lower]; dup {
			return
		}
		seen[lower] = struct{}{}
		out = append(out, tok)
	}

	for _, tok := range reASCIIWord.FindAllString(cleaned, -1) {
		add(tok)
	}
	for _, run := range reCJKRun.FindAllString(cleaned, -1) {
		for _, tok := range splitCJKRun(run) {
			add(tok)
		}
	}

	// Uppercase identifiers not caught above (already deduped by add).
	for _, tok := range reUpperToken.FindAllString(cleaned, -1) {
		add(tok)
	}
	return out
}

// splitCJKRun removes embedded stop words from a contiguous CJK run and
// returns the content fragments that remain. Longest stop words are
// stripped first so "我的" is removed before "我" or "的".
func splitCJKRun(run string) []string {
	frags := []string{run}
	for _, stop := range cjkStops {
		var next []string
		for _, f := range frags {
			next = append(next, strings.Split(f, stop)...)
		}
		frags = next
	}
	var out []string
	for _, f := range frags {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// cjkStops holds the CJK stop words, longest first, so "我的" is
// stripped before "我" or "的".
var cjkStops = buildCJKStops()

func buildCJKStops() []string {
	var stops []string
	for w := range stopWords {
		if isCJK(w) {
			stops = append(stops, w)
		}
	}
	// Length then lexicographic: map iteration must not leak into the
	// split order of equal-length stops.
	sort.Slice(stops, func(i, j int) bool {
		if li, lj := utfLen(stops[i]), utfLen(stops[j]); li != lj {
			return li > lj
		}
		return stops[i] < stops[j]
	})
	return stops
}

func isCJK(s string) bool {
	for _, r := range s {
		if !unicode.Is(unicode.Han, r) {
			return false
		}
	}
	return s != ""
}

func utfLen(s string) int {
	return len([]rune(s))
}

func containsAnyFold(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
