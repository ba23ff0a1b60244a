// Package narrative provides the text-generation backends used to draft a story.
// It defines a provider-agnostic LLM interface with an OpenAI implementation, a seeded offline
// template backend, and a scripted mock for testing. The Generator wraps any backend and
// enforces that a call either yields usable text or fails with ErrGenerationFailed.
package narrative

import (
	"context"
	"errors"
)

var (
	ErrLLMFailed     = errors.New("LLM request failed")
	ErrInvalidConfig = errors.New("invalid LLM configuration")
)

// Sampling carries the per-call generation parameters.
type Sampling struct {
	// MaxTokens limits the response length (0 = use provider default)
	MaxTokens int

	// Temperature controls randomness (0.0 = provider default)
	Temperature float64
}

// LLM defines the interface for interacting with language models.
type LLM interface {
	// Generate produces text from a prompt. It blocks until text is returned or the call fails.
	Generate(ctx context.Context, prompt string, params Sampling) (string, error)
}

// LLMConfig holds provider-level configuration.
type LLMConfig struct {
	// Model specifies the model identifier (e.g., "gpt-4o")
	Model string

	// APIKey is the authentication key for the provider
	APIKey string

	// BaseURL overrides the provider endpoint (empty = provider default)
	BaseURL string
}

// DefaultLLMConfig returns sensible defaults for chapter drafting.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Model: "gpt-4o",
	}
}
