package query

import (
	"time"

	"jira-query-agent/pkg/timerange"
)

// ActorRole is a query dimension describing how the user relates to an
// issue. Participant is the recall-oriented union of the other three.
type ActorRole string

const (
	RoleAssignee      ActorRole = "assignee"
	RoleReporter      ActorRole = "reporter"
	RoleWorklogAuthor ActorRole = "worklog_author"
	RoleParticipant   ActorRole = "participant"
)

// roleOrder fixes the canonical iteration order for deterministic variant
// generation.
var roleOrder = []ActorRole{RoleAssignee, RoleReporter, RoleWorklogAuthor, RoleParticipant}

// RoleSet is a set of actor roles.
type RoleSet map[ActorRole]struct{}

// NewRoleSet builds a set from the given roles.
func NewRoleSet(roles ...ActorRole) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s.Add(r)
	}
	return s
}

// AllRoles returns the broadest role set (no verb signal in the phrase).
func AllRoles() RoleSet {
	return NewRoleSet(roleOrder...)
}

func (s RoleSet) Add(r ActorRole)      { s[r] = struct{}{} }
func (s RoleSet) Has(r ActorRole) bool { _, ok := s[r]; return ok }
func (s RoleSet) Len() int             { return len(s) }

// Sorted returns the contained roles in canonical order.
func (s RoleSet) Sorted() []ActorRole {
	out := make([]ActorRole, 0, len(s))
	for _, r := range roleOrder {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

// ParsedIntent is the merged intermediate representation produced by the
// temporal resolver and the entity extractor, optionally refined by the
// augmentation port. Augmentation may add to it but never removes a
// user-stated constraint.
type ParsedIntent struct {
	TimeRange   *timerange.Range
	Roles       RoleSet
	ProjectKeys []string
	IssueTypes  []string
	Statuses    []string
	Keywords    []string // original order preserved
	// ExcludedKeywords holds terms the user asked to filter OUT
	// ("排行榜以外"). A non-empty list suppresses keyword matching so an
	// excluded term never drives a hit.
	ExcludedKeywords []string
	CurrentUser      bool
}

// QueryVariant is one plausible JQL interpretation of the user's intent.
// All generated variants are always executed; SpecificityRank records how
// narrowly the variant constrains results (0 = broadest) for provenance.
type QueryVariant struct {
	JQL             string `json:"jql"`
	StrategyTag     string `json:"strategy_tag"`
	SpecificityRank int    `json:"specificity_rank"`
}

// Issue is the reconciled view of a tracker issue. MatchedBy lists the
// strategy tags of every variant that independently returned it, sorted.
type Issue struct {
	Key       string    `json:"key"`
	Summary   string    `json:"summary"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
	MatchedBy []string  `json:"matched_by"`
}

// VariantFailure records a variant that contributed no results and why.
type VariantFailure struct {
	StrategyTag string `json:"strategy_tag"`
	Reason      string `json:"reason"`
}

// Diagnostics explains degraded or partial results; it is always returned
// alongside the issue list so an empty result is never silent.
type Diagnostics struct {
	FailedVariants    []VariantFailure `json:"failed_variants,omitempty"`
	DegradedTimeRange bool             `json:"degraded_time_range"`
	TimeRangeLabel    string           `json:"time_range_label,omitempty"`
	Warnings          []string         `json:"warnings,omitempty"`
}

// ProcessInput is a single natural-language request.
type ProcessInput struct {
	Text          string
	MaxResults    int
	ReferenceTime time.Time // zero value means "now"; injectable for tests
}

// ProcessOutput is the ranked, deduplicated batch result.
type ProcessOutput struct {
	Issues      []Issue        `json:"issues"`
	Variants    []QueryVariant `json:"variants"`
	Diagnostics Diagnostics    `json:"diagnostics"`
}
