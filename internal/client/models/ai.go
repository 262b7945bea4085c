package models

import (
	"strings"

	"github.com/avoronin/daybook/internal/common"
)

type AiProviderType string

const (
	ProviderBuiltin AiProviderType = "builtin"
	ProviderCustom  AiProviderType = "custom"
)

// AiProviderConfig describes one AI provider the client can invoke through
// the backend. Built-in providers have fixed endpoints; custom providers are
// user-defined and endpoint-editable.
type AiProviderConfig struct {
	ID        string         `json:"id"`
	Label     string         `json:"label"`
	BaseURL   string         `json:"base_url"`
	Editable  bool           `json:"editable"`
	Model     string         `json:"model,omitempty"`
	Type      AiProviderType `json:"type"`
	HasSecret bool           `json:"has_secret,omitempty"`
}

// IsCustom reports whether the provider id carries the custom prefix.
func (p AiProviderConfig) IsCustom() bool {
	return strings.HasPrefix(p.ID, common.CustomProviderPrefix)
}

// AiAdvancedSettings are generation parameters shared across all providers.
type AiAdvancedSettings struct {
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// AiSettingsState is the full persisted provider configuration.
// Invariant (after sanitizing): ActiveProviderID always resolves to a key in
// Providers; otherwise it is reset to the disabled sentinel.
type AiSettingsState struct {
	Providers        map[string]AiProviderConfig `json:"providers"`
	ActiveProviderID string                      `json:"active_provider_id"`
	Advanced         AiAdvancedSettings          `json:"advanced"`
}

// AiInvocation is the validated payload handed to the backend when a save
// should also request summarization, or when chat is invoked directly.
type AiInvocation struct {
	ProviderID  string  `json:"provider"`
	BaseURL     string  `json:"base_url"`
	Model       string  `json:"model,omitempty"`
	Prompt      string  `json:"prompt,omitempty"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// ChatMessage is a single turn sent to invokeAiChat.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResult is the generated text plus usage metadata.
type ChatResult struct {
	Text             string `json:"text"`
	PromptTokens     int    `json:"prompt_tokens,omitempty"`
	CompletionTokens int    `json:"completion_tokens,omitempty"`
}
