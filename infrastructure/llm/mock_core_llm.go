package llm

import (
	"context"
	"sync"
	"time"

	"github.com/brandscope/brandscope/internal/domain"
)

// MockCoreLLM provides a configurable mock implementation of CoreLLM
// for testing middleware and collection behavior.
type MockCoreLLM struct {
	mu sync.Mutex

	// Response configuration.
	Response      string
	References    []domain.Reference
	TokensIn      int
	TokensOut     int
	Err           error
	Model         string
	ResponseDelay time.Duration

	// FailUntilAttempt fails the first N attempts, then succeeds.
	FailUntilAttempt int

	// Tracking.
	CallCount  int
	LastPrompt string
	LastOpts   map[string]any
	Prompts    []string
}

// NewMockCoreLLM creates a mock with default successful behavior.
func NewMockCoreLLM() *MockCoreLLM {
	return &MockCoreLLM{
		Response:  "test response",
		TokensIn:  10,
		TokensOut: 20,
		Model:     "test-model",
	}
}

// DoRequest implements the CoreLLM interface with configurable
// behavior.
func (m *MockCoreLLM) DoRequest(ctx context.Context, prompt string, opts map[string]any) (Completion, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastPrompt = prompt
	m.LastOpts = opts
	m.Prompts = append(m.Prompts, prompt)
	delay := m.ResponseDelay
	failing := m.FailUntilAttempt > 0 && m.CallCount <= m.FailUntilAttempt
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return Completion{}, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if failing {
		if m.Err != nil {
			return Completion{}, m.Err
		}
		return Completion{}, NewProviderError("mock", ErrorTypeServerError, 503, "simulated failure", nil)
	}
	if m.Err != nil {
		return Completion{}, m.Err
	}

	return Completion{
		Text:       m.Response,
		References: m.References,
		TokensIn:   m.TokensIn,
		TokensOut:  m.TokensOut,
	}, nil
}

// GetModel returns the configured model name.
func (m *MockCoreLLM) GetModel() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Model
}

// SetModel updates the model name.
func (m *MockCoreLLM) SetModel(model string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Model = model
}

// GetCallCount returns the number of times DoRequest was called.
func (m *MockCoreLLM) GetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}
