package models

import (
	"context"
)

// Provider defines the interface for LLM backends.
type Provider interface {
	// Generate sends a request to the model and returns the response.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// Quick sends a single standalone prompt with no history or tools and
	// returns the text reply. Used for best-effort side calls such as the
	// travel tip; callers supply their own fallback on error.
	Quick(ctx context.Context, prompt string) (string, error)

	// SetModel changes the active model at runtime.
	SetModel(model string) error

	// GetModel returns the currently active model name.
	GetModel() string
}
