package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stellarlinkco/prompt-stress/internal/claude"
)

// ClaudeBackend sends prompts to the Anthropic messages API.
type ClaudeBackend struct {
	client    *claude.Client
	maxTokens int
}

// NewClaudeBackend constructs a Claude backend. Construction fails when no
// credential is available, so a misconfigured run stops before any test
// case executes.
func NewClaudeBackend(apiKey string, baseURL string, model string) (*ClaudeBackend, error) {
	opts := make([]claude.Option, 0, 2)
	if v := strings.TrimSpace(baseURL); v != "" {
		opts = append(opts, claude.WithBaseURL(v))
	}
	if v := strings.TrimSpace(model); v != "" {
		opts = append(opts, claude.WithModel(v))
	}

	client := claude.NewClient(strings.TrimSpace(apiKey), opts...)
	if !client.Authenticated() {
		return nil, errors.New("llm: claude: missing api key (set ANTHROPIC_API_KEY)")
	}

	return &ClaudeBackend{client: client, maxTokens: defaultMaxTokens}, nil
}

// Name returns the backend identifier.
func (b *ClaudeBackend) Name() string {
	return "claude"
}

// Model returns the model the backend will call.
func (b *ClaudeBackend) Model() string {
	if b == nil || b.client == nil {
		return ""
	}
	return b.client.Model()
}

// Call sends the prompt as a single user message.
func (b *ClaudeBackend) Call(ctx context.Context, prompt string) (*Reply, error) {
	if b == nil || b.client == nil {
		return nil, errors.New("llm: claude: nil client")
	}
	if ctx == nil {
		return nil, errors.New("llm: claude: nil context")
	}

	text, latency, err := b.client.Ask(ctx, prompt, b.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("llm: claude: %w", err)
	}
	return &Reply{Text: text, LatencyMs: latency}, nil
}
