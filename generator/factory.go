package generator

import (
	"fmt"
	"strings"

	"github.com/planforge/planforge/types"
)

// New is a factory that returns a Generator based on the configured
// provider. An empty provider selects the deterministic heuristic engine,
// so a bare config always yields a working generator.
func New(cfg *types.AppConfig) (Generator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Generation.Provider))
	switch provider {
	case "", "heuristic":
		return NewHeuristic(), nil
	case "openai":
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("openai generator selected but API key is missing")
		}
		return NewOpenAI(cfg.LLM), nil
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", cfg.Generation.Provider)
	}
}
