package llmprovider

import (
	"context"

	"jira-query-agent/pkg/deepseek"
	"jira-query-agent/pkg/gemini"
	"jira-query-agent/pkg/qwen"
)

// DeepSeekAdapter adapts pkg/deepseek to the Provider interface.
type DeepSeekAdapter struct {
	client *deepseek.Client
}

// NewDeepSeekAdapter creates a new DeepSeek adapter.
func NewDeepSeekAdapter(client *deepseek.Client) *DeepSeekAdapter {
	return &DeepSeekAdapter{client: client}
}

func (a *DeepSeekAdapter) Complete(ctx context.Context, req *Request) (*Response, error) {
	c, err := a.client.Complete(ctx, req.System, req.Prompt, req.Temperature, req.MaxTokens)
	if err != nil {
		return nil, err
	}
	return &Response{
		Text:         c.Text,
		ProviderName: a.Name(),
		ModelName:    a.Model(),
		Usage:        &Usage{InputTokens: c.InputTokens, OutputTokens: c.OutputTokens, TotalTokens: c.TotalTokens},
	}, nil
}

func (a *DeepSeekAdapter) Name() string  { return "deepseek" }
func (a *DeepSeekAdapter) Model() string { return a.client.ModelName() }

// QwenAdapter adapts pkg/qwen to the Provider interface.
type QwenAdapter struct {
	client *qwen.Client
}

// NewQwenAdapter creates a new Qwen adapter.
func NewQwenAdapter(client *qwen.Client) *QwenAdapter {
	return &QwenAdapter{client: client}
}

func (a *QwenAdapter) Complete(ctx context.Context, req *Request) (*Response, error) {
	c, err := a.client.Complete(ctx, req.System, req.Prompt, req.Temperature, req.MaxTokens)
	if err != nil {
		return nil, err
	}
	return &Response{
		Text:         c.Text,
		ProviderName: a.Name(),
		ModelName:    a.Model(),
		Usage:        &Usage{InputTokens: c.InputTokens, OutputTokens: c.OutputTokens, TotalTokens: c.TotalTokens},
	}, nil
}

func (a *QwenAdapter) Name() string  { return "qwen" }
func (a *QwenAdapter) Model() string { return a.client.ModelName() }

// GeminiAdapter adapts pkg/gemini to the Provider interface.
type GeminiAdapter struct {
	client *gemini.Client
}

// NewGeminiAdapter creates a new Gemini adapter.
func NewGeminiAdapter(client *gemini.Client) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

func (a *GeminiAdapter) Complete(ctx context.Context, req *Request) (*Response, error) {
	c, err := a.client.Complete(ctx, req.System, req.Prompt, req.Temperature, req.MaxTokens)
	if err != nil {
		return nil, err
	}
	return &Response{
		Text:         c.Text,
		ProviderName: a.Name(),
		ModelName:    a.Model(),
		Usage:        &Usage{InputTokens: c.InputTokens, OutputTokens: c.OutputTokens, TotalTokens: c.TotalTokens},
	}, nil
}

func (a *GeminiAdapter) Name() string  { return "gemini" }
func (a *GeminiAdapter) Model() string { return a.client.ModelName() }
