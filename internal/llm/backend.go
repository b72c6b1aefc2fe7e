package llm

import "context"

// Backend sends a single prompt to a model and returns the response text
// together with the wall-clock latency of the call.
type Backend interface {
	Name() string
	Model() string
	Call(ctx context.Context, prompt string) (*Reply, error)
}

// Reply is one model response.
type Reply struct {
	Text      string
	LatencyMs int64
}
