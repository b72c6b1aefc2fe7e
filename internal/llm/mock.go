package llm

import (
	"context"
	"errors"
	"fmt"
)

const mockLatencyMs = 100

// MockBackend is an offline stand-in for a live model. It echoes a
// truncated copy of the prompt with a fixed synthetic latency, so repeated
// runs over the same dataset are byte-identical.
type MockBackend struct {
	model string
}

// NewMockBackend creates a mock backend. An empty model defaults to "mock".
func NewMockBackend(model string) *MockBackend {
	if model == "" {
		model = "mock"
	}
	return &MockBackend{model: model}
}

// Name returns the backend identifier.
func (b *MockBackend) Name() string {
	return "mock"
}

// Model returns the configured model label.
func (b *MockBackend) Model() string {
	if b == nil {
		return ""
	}
	return b.model
}

// Call echoes the prompt without any network I/O.
func (b *MockBackend) Call(ctx context.Context, prompt string) (*Reply, error) {
	if b == nil {
		return nil, errors.New("llm: mock: nil backend")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	return &Reply{
		Text:      fmt.Sprintf("[MOCK RESPONSE for: %s...]", truncate(prompt, 50)),
		LatencyMs: mockLatencyMs,
	}, nil
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
