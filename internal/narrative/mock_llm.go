package narrative

import (
	"context"
	"fmt"
)

// MockLLM is a scripted LLM implementation for testing.
type MockLLM struct {
	// Responses are returned in order; the last one repeats once the script runs out.
	// If empty, a response naming the call number is returned.
	Responses []string

	// Error, if set, is returned by Generate instead of a response.
	Error error

	// FailAfter, if positive, makes every call after the first FailAfter calls return Error.
	FailAfter int

	// Prompts records every prompt passed to Generate.
	Prompts []string

	// Params records the sampling parameters of every call.
	Params []Sampling
}

// NewMockLLM creates a mock LLM that replays the given responses.
func NewMockLLM(responses ...string) *MockLLM {
	return &MockLLM{Responses: responses}
}

// NewMockLLMWithError creates a mock LLM that always returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Error: err}
}

// Generate returns the next scripted response.
func (m *MockLLM) Generate(ctx context.Context, prompt string, params Sampling) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	m.Params = append(m.Params, params)
	call := len(m.Prompts)

	if m.Error != nil && (m.FailAfter <= 0 || call > m.FailAfter) {
		return "", m.Error
	}

	if len(m.Responses) == 0 {
		return fmt.Sprintf("Mock passage %d.", call), nil
	}
	if call <= len(m.Responses) {
		return m.Responses[call-1], nil
	}
	return m.Responses[len(m.Responses)-1], nil
}

// Calls returns the number of Generate invocations so far.
func (m *MockLLM) Calls() int {
	return len(m.Prompts)
}

// LastPrompt returns the most recent prompt passed to Generate.
func (m *MockLLM) LastPrompt() string {
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}
