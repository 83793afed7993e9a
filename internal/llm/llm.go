package llm

import (
	"context"
	"errors"
)

// Completer abstracts text-generation providers used by the writing assistant.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error)
}

// CompleteOptions tunes a single completion.
type CompleteOptions struct {
	// JSON asks the provider for a JSON-only response.
	JSON bool
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is used when no provider is configured; every call fails
// so callers take their fallback path.
type PlaceholderClient struct{}

// Complete returns ErrNotImplemented.
func (PlaceholderClient) Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error) {
	_ = ctx
	_ = prompt
	_ = opts
	return "", ErrNotImplemented
}
