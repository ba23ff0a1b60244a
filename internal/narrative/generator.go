package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrGenerationFailed = errors.New("narrative generation failed")
)

// Passage is one piece of generated text, either an outline or a chapter.
type Passage struct {
	// Label identifies what the passage is for (e.g. "outline", "chapter-03")
	Label string `json:"label"`

	// Text is the generated content
	Text string `json:"text"`

	// GeneratedAt is when this passage was created
	GeneratedAt time.Time `json:"generated_at"`

	// Model is the model used to generate this passage
	Model string `json:"model"`
}

// Generator invokes an LLM on an already-assembled prompt.
type Generator struct {
	llm    LLM
	config LLMConfig
}

// NewGenerator creates a generator with the given LLM implementation.
func NewGenerator(llm LLM, config LLMConfig) *Generator {
	return &Generator{
		llm:    llm,
		config: config,
	}
}

// Generate invokes the LLM with an already-assembled prompt.
// It must not perform prompt construction. Blank output counts as a failure.
func (g *Generator) Generate(ctx context.Context, label string, prompt string, params Sampling) (*Passage, error) {
	passage, err := g.GenerateRaw(ctx, label, prompt, params)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(passage.Text) == "" {
		return nil, fmt.Errorf("%w: %s: LLM returned no text", ErrGenerationFailed, label)
	}
	return passage, nil
}

// GenerateRaw is Generate without the blank-output check, for callers that have their own
// fallback for empty text.
func (g *Generator) GenerateRaw(ctx context.Context, label string, prompt string, params Sampling) (*Passage, error) {
	if g == nil || g.llm == nil {
		return nil, fmt.Errorf("%w: LLM is required", ErrGenerationFailed)
	}
	if label == "" {
		return nil, fmt.Errorf("%w: label is required", ErrGenerationFailed)
	}
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt is required", ErrGenerationFailed)
	}

	text, err := g.llm.Generate(ctx, prompt, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: LLM invocation failed: %w", ErrGenerationFailed, label, err)
	}

	return &Passage{
		Label:       label,
		Text:        text,
		GeneratedAt: time.Now(),
		Model:       g.config.Model,
	}, nil
}
