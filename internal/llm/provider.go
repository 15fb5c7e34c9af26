// Package llm generates optional executive commentary for claim reports.
// The commentary prompt carries only aggregate figures and the active
// filters, never raw claim records.
package llm

import (
	"context"
	"fmt"

	"github.com/hotelrisk/riskadvisor/internal/model"
)

// Provider is a chat-completion backend.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Comment generates a short commentary for the given request.
	Comment(ctx context.Context, req CommentRequest) (*CommentResponse, error)
}

// CommentRequest describes a commentary generation call.
type CommentRequest struct {
	// ClientLabel is the display name the report is addressed to.
	ClientLabel string

	// Filters describes the active query filters in plain language.
	Filters string

	// Aggregate holds the computed figures the commentary may reference.
	Aggregate model.Aggregate

	// MaxTokens caps the response length; zero uses the provider default.
	MaxTokens int
}

// CommentResponse is the generated commentary.
type CommentResponse struct {
	Text  string
	Model string
}

// NewProvider builds the configured provider. An empty provider name means
// commentary is disabled and no provider is returned.
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
