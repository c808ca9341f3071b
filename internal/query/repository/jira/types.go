package jira

// ---- Request/Response types scoped to this package ----

// searchRequest is the body for POST /rest/api/2/search.
type searchRequest struct {
	JQL        string   `json:"jql"`
	MaxResults int      `json:"maxResults"`
	Fields     []string `json:"fields"`
}

// searchResponse is the Jira search result page.
type searchResponse struct {
	Total  int           `json:"total"`
	Issues []issueResult `json:"issues"`
}

type issueResult struct {
	Key    string      `json:"key"`
	Fields issueFields `json:"fields"`
}

type issueFields struct {
	Summary string       `json:"summary"`
	Status  *statusField `json:"status"`
	Updated string       `json:"updated"`
}

type statusField struct {
	Name string `json:"name"`
}

// projectResponse is one entry from GET /rest/api/2/project.
type projectResponse struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}
