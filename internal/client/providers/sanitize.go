package providers

import (
	"math"
	"strings"

	"github.com/avoronin/daybook/internal/client/models"
	"github.com/avoronin/daybook/internal/common"
)

// SanitizeState reconstructs a valid settings state from a possibly corrupt
// or partially-present one. It is pure and total: it never fails, it only
// repairs. It is also idempotent: SanitizeState(SanitizeState(x)) equals
// SanitizeState(x) under structural equality.
//
// Rules:
//   - built-in providers are re-derived from the canonical table; only their
//     mutable fields (model override, secret hint) survive from raw
//   - custom providers are kept only when well-formed: the id carries the
//     custom prefix and a base URL is present
//   - advanced settings are clamped, never rejected
//   - an active id that no longer resolves falls back to the disabled sentinel
func SanitizeState(raw models.AiSettingsState) models.AiSettingsState {
	out := models.AiSettingsState{
		Providers: make(map[string]models.AiProviderConfig),
		Advanced:  clampAdvanced(raw.Advanced),
	}

	for id, canonical := range builtinProviders() {
		p := canonical
		if prev, ok := raw.Providers[id]; ok {
			if prev.Model != "" {
				p.Model = prev.Model
			}
			p.HasSecret = prev.HasSecret
		}
		out.Providers[id] = p
	}

	for id, prev := range raw.Providers {
		if !strings.HasPrefix(id, common.CustomProviderPrefix) {
			continue
		}
		if prev.BaseURL == "" {
			continue
		}
		p := prev
		p.ID = id
		p.Editable = true
		p.Type = models.ProviderCustom
		if p.Label == "" {
			p.Label = strings.TrimPrefix(id, common.CustomProviderPrefix)
		}
		out.Providers[id] = p
	}

	out.ActiveProviderID = raw.ActiveProviderID
	if _, ok := out.Providers[out.ActiveProviderID]; !ok {
		out.ActiveProviderID = common.ProviderDisabledID
	}

	return out
}

func clampAdvanced(adv models.AiAdvancedSettings) models.AiAdvancedSettings {
	out := adv

	if out.Prompt == "" {
		out.Prompt = DefaultPrompt
	}

	if math.IsNaN(out.Temperature) || math.IsInf(out.Temperature, 0) {
		out.Temperature = DefaultTemperature
	}
	if out.Temperature < MinTemperature {
		out.Temperature = MinTemperature
	}
	if out.Temperature > MaxTemperature {
		out.Temperature = MaxTemperature
	}

	if out.MaxTokens <= 0 {
		out.MaxTokens = DefaultMaxTokens
	}

	return out
}
