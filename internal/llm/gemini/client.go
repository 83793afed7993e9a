// Package gemini adapts Google's Gemini models to llm.Completer through langchaingo.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"resume-builder/internal/llm"
)

const defaultModel = "gemini-2.5-flash"

// Client implements llm.Completer on top of a langchaingo model.
type Client struct {
	model llms.Model
}

// NewClient builds a Gemini-backed client. An empty model name selects the default.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	m, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{model: m}, nil
}

// NewWithModel wraps an existing langchaingo model.
func NewWithModel(m llms.Model) *Client {
	return &Client{model: m}
}

// Complete sends prompt as a single human message.
func (c *Client) Complete(ctx context.Context, prompt string, opts llm.CompleteOptions) (string, error) {
	var callOpts []llms.CallOption
	if opts.JSON {
		callOpts = append(callOpts, llms.WithJSONMode())
	}
	resp, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, callOpts...)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	content := strings.TrimSpace(resp)
	if content == "" {
		return "", fmt.Errorf("gemini response empty content")
	}
	return content, nil
}

var _ llm.Completer = (*Client)(nil)
