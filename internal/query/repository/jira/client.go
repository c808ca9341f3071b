package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Client is the HTTP wrapper for the Jira REST API. A client-side rate
// limiter keeps concurrent variant dispatch within the remote API's rate
// policy.
type Client struct {
	baseURL    string
	email      string
	apiToken   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Config holds Jira connection settings. Either BearerToken (PAT) or
// Email+APIToken (basic auth) must be set.
type Config struct {
	BaseURL           string
	Email             string
	APIToken          string
	BearerToken       string
	RequestsPerSecond float64
	Burst             int
}

// NewClient creates a new Jira HTTP client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("jira base URL is required")
	}
	if cfg.BearerToken == "" && (cfg.Email == "" || cfg.APIToken == "") {
		return nil, fmt.Errorf("jira credentials are required (bearer token or email + api token)")
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = int(rps)
	}

	httpClient := &http.Client{}
	if cfg.BearerToken != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.BearerToken})
		httpClient = oauth2.NewClient(context.Background(), src)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		email:      cfg.Email,
		apiToken:   cfg.APIToken,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

// SearchIssues executes a JQL search via POST /rest/api/2/search.
func (c *Client) SearchIssues(ctx context.Context, jqlText string, maxResults int) (*searchResponse, error) {
	url := fmt.Sprintf("%s/rest/api/2/search", c.baseURL)

	body, err := json.Marshal(searchRequest{
		JQL:        jqlText,
		MaxResults: maxResults,
		Fields:     []string{"summary", "status", "updated"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode jira search response: %w", err)
	}
	return &resp, nil
}

// ListProjects fetches projects visible to the authenticated account.
func (c *Client) ListProjects(ctx context.Context) ([]projectResponse, error) {
	url := fmt.Sprintf("%s/rest/api/2/project", c.baseURL)

	raw, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var projects []projectResponse
	if err := json.Unmarshal(raw, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode jira project response: %w", err)
	}
	return projects, nil
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewBuffer(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build jira request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.email != "" {
		httpReq.SetBasicAuth(c.email, c.apiToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &apiError{StatusCode: 0, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read jira response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &apiError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}

// apiError carries the HTTP status so the repository layer can map it to
// the executor error taxonomy.
type apiError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *apiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("jira API transport error: %v", e.Err)
	}
	return fmt.Sprintf("jira API error %d: %s", e.StatusCode, e.Body)
}

func (e *apiError) Unwrap() error { return e.Err }
