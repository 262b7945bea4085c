package providers

import (
	"github.com/avoronin/daybook/internal/client/models"
	"github.com/avoronin/daybook/internal/common"
)

// Shared generation defaults applied whenever persisted values are missing
// or out of range.
const (
	DefaultPrompt      = "Summarize this journal entry in one or two warm, first-person sentences."
	DefaultTemperature = 0.7
	MinTemperature     = 0.0
	MaxTemperature     = 2.0
	DefaultMaxTokens   = 1024
)

// builtinProviders is the canonical table of built-in providers. Fixed
// fields (label, base URL, editability, type) are re-derived from here on
// every sanitize; persisted drift in them is ignored.
func builtinProviders() map[string]models.AiProviderConfig {
	return map[string]models.AiProviderConfig{
		common.ProviderDisabledID: {
			ID:    common.ProviderDisabledID,
			Label: "AI disabled",
			Type:  models.ProviderBuiltin,
		},
		"openai": {
			ID:      "openai",
			Label:   "OpenAI",
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
			Type:    models.ProviderBuiltin,
		},
		"openrouter": {
			ID:      "openrouter",
			Label:   "OpenRouter",
			BaseURL: "https://openrouter.ai/api/v1",
			Type:    models.ProviderBuiltin,
		},
		"ollama": {
			ID:      "ollama",
			Label:   "Ollama (local)",
			BaseURL: "http://127.0.0.1:11434/v1",
			Type:    models.ProviderBuiltin,
		},
	}
}
