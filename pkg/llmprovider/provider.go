package llmprovider

import "context"

// Provider defines the interface for LLM providers.
type Provider interface {
	// Complete sends a single-turn completion request and returns a response.
	Complete(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g. "qwen", "gemini").
	Name() string

	// Model returns the model being used.
	Model() string
}

// Request is a normalized single-turn completion request. The augmentation
// port only needs system + user text, so the surface stays small.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Response is a normalized completion response.
type Response struct {
	Text         string
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Usage tracks token consumption.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
