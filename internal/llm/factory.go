package llm

import (
	"fmt"
	"strings"

	"github.com/stellarlinkco/prompt-stress/internal/config"
)

// defaultMaxTokens caps response length for live backends.
const defaultMaxTokens = 1000

// Names lists the selectable backend variants.
func Names() []string {
	return []string{"claude", "openai", "mock"}
}

// FromConfig builds the named backend. The model argument overrides the
// configured model when non-empty. Backend construction failures are
// configuration errors and surface here, before any test case runs.
func FromConfig(cfg *config.Config, name string, model string) (Backend, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	model = strings.TrimSpace(model)

	var pcfg config.ProviderConfig
	if cfg != nil {
		pcfg = cfg.Provider(key)
	}
	if model == "" {
		model = pcfg.Model
	}

	switch key {
	case "claude", "anthropic":
		return NewClaudeBackend(pcfg.APIKey, pcfg.BaseURL, model)
	case "openai":
		return NewOpenAIBackend(pcfg.APIKey, pcfg.BaseURL, model)
	case "mock":
		return NewMockBackend(model), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q (available: %s)", name, strings.Join(Names(), ", "))
	}
}
