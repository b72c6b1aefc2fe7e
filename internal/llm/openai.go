package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o"

// OpenAIBackend sends prompts to the OpenAI chat completions API.
type OpenAIBackend struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIBackend constructs an OpenAI backend. Construction fails when no
// credential is available, so a misconfigured run stops before any test
// case executes.
func NewOpenAIBackend(apiKey string, baseURL string, model string) (*OpenAIBackend, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	if apiKey == "" {
		return nil, errors.New("llm: openai: missing api key (set OPENAI_API_KEY)")
	}

	cfg := openai.DefaultConfig(apiKey)
	if v := strings.TrimSpace(baseURL); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}

	m := strings.TrimSpace(model)
	if m == "" {
		m = defaultOpenAIModel
	}

	return &OpenAIBackend{
		client:    openai.NewClientWithConfig(cfg),
		model:     m,
		maxTokens: defaultMaxTokens,
	}, nil
}

// Name returns the backend identifier.
func (b *OpenAIBackend) Name() string {
	return "openai"
}

// Model returns the model the backend will call.
func (b *OpenAIBackend) Model() string {
	if b == nil {
		return ""
	}
	return b.model
}

// Call sends the prompt as a single user message.
func (b *OpenAIBackend) Call(ctx context.Context, prompt string) (*Reply, error) {
	if b == nil || b.client == nil {
		return nil, errors.New("llm: openai: nil client")
	}
	if ctx == nil {
		return nil, errors.New("llm: openai: nil context")
	}

	req := openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
		MaxTokens: b.maxTokens,
	}

	start := time.Now()
	resp, err := b.client.CreateChatCompletion(ctx, req)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		return nil, fmt.Errorf("llm: openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("llm: openai: empty choices")
	}

	return &Reply{
		Text:      resp.Choices[0].Message.Content,
		LatencyMs: latency,
	}, nil
}
