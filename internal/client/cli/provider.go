package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/avoronin/daybook/internal/common"
)

func (a *App) listProviders() {
	state := a.providers.State()

	ids := make([]string, 0, len(state.Providers))
	for id := range state.Providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		p := state.Providers[id]
		marker := " "
		if id == state.ActiveProviderID {
			marker = "*"
		}
		line := fmt.Sprintf("%s %-20s %s", marker, p.ID, p.Label)
		if p.BaseURL != "" {
			line += "  " + p.BaseURL
		}
		if p.Model != "" {
			line += "  model=" + p.Model
		}
		if p.HasSecret {
			line += "  key=" + common.SecretPlaceholder
		}
		fmt.Fprintln(a.out, line)
	}
}

func (a *App) useProvider(ctx context.Context, id string) {
	if err := a.providers.SetActiveProvider(ctx, id); err != nil {
		fmt.Fprintf(a.out, "Cannot switch provider: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Active provider:", id)
}

func (a *App) addProvider(ctx context.Context, suffix, baseURL string) {
	p, err := a.providers.AddCustomProvider(ctx, suffix, baseURL)
	if err != nil {
		if errors.Is(err, common.ErrorRiskyBaseURL) {
			fmt.Fprintln(a.out, "The endpoint looks unsafe (non-HTTPS, local, or private).")
			fmt.Fprintln(a.out, "Repeat the exact same command to confirm.")
			return
		}
		fmt.Fprintf(a.out, "Cannot add provider: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Added %s (now active)\n", p.ID)
}

func (a *App) removeProvider(ctx context.Context) {
	active := a.providers.Active()
	if err := a.providers.RemoveActiveCustom(ctx); err != nil {
		fmt.Fprintf(a.out, "Cannot remove provider: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Removed %s, AI disabled\n", active.ID)
}

func (a *App) setBaseURL(ctx context.Context, baseURL string) {
	active := a.providers.Active()
	if err := a.providers.SetBaseURL(ctx, active.ID, baseURL); err != nil {
		if errors.Is(err, common.ErrorRiskyBaseURL) {
			fmt.Fprintln(a.out, "The endpoint looks unsafe (non-HTTPS, local, or private).")
			fmt.Fprintln(a.out, "Repeat the exact same command to confirm.")
			return
		}
		fmt.Fprintf(a.out, "Cannot change endpoint: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Endpoint updated")
}

func (a *App) setSecret(ctx context.Context) {
	active := a.providers.Active()
	if active.ID == common.ProviderDisabledID {
		fmt.Fprintln(a.out, "No provider selected; use 'use <id>' first")
		return
	}

	value, err := GetSecret(fmt.Sprintf("API key for %s (empty to clear)", active.ID), a.out)
	if err != nil {
		a.log.Error(ctx, "reading api key", "error", err)
		return
	}

	if err := a.providers.SetSecret(ctx, active.ID, value); err != nil {
		fmt.Fprintf(a.out, "Cannot store key: %v\n", err)
		return
	}
	if value == "" {
		fmt.Fprintln(a.out, "Key cleared")
	} else {
		fmt.Fprintln(a.out, "Key stored")
	}
}

func (a *App) setModel(ctx context.Context, model string) {
	active := a.providers.Active()
	if err := a.providers.SetModel(ctx, active.ID, model); err != nil {
		fmt.Fprintf(a.out, "Cannot set model: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Model set to", model)
}

func (a *App) listModels(ctx context.Context) {
	active := a.providers.Active()
	if active.ID == common.ProviderDisabledID {
		fmt.Fprintln(a.out, "No provider selected; use 'use <id>' first")
		return
	}

	models, err := a.api.ListAiModels(ctx, active.ID, active.BaseURL)
	if err != nil {
		fmt.Fprintf(a.out, "Cannot list models: %v\n", err)
		return
	}
	if len(models) == 0 {
		fmt.Fprintln(a.out, "No models reported")
		return
	}
	for _, m := range models {
		marker := " "
		if m == active.Model {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %s\n", marker, m)
	}
}

func (a *App) showSettings() {
	state := a.providers.State()
	fmt.Fprintln(a.out, "Active provider:", state.ActiveProviderID)
	fmt.Fprintln(a.out, "Prompt:", state.Advanced.Prompt)
	fmt.Fprintln(a.out, "Temperature:", state.Advanced.Temperature)
	fmt.Fprintln(a.out, "Max tokens:", state.Advanced.MaxTokens)
}

func (a *App) setPrompt(ctx context.Context) {
	text, err := GetMultiline(a.reader, "- Enter summarization prompt", a.out)
	if err != nil {
		a.log.Error(ctx, "reading prompt", "error", err)
		return
	}

	adv := a.providers.State().Advanced
	adv.Prompt = text
	if err := a.providers.UpdateAdvanced(ctx, adv); err != nil {
		fmt.Fprintf(a.out, "Cannot update prompt: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Prompt updated")
}

func (a *App) setTemperature(ctx context.Context, value string) {
	t, err := strconv.ParseFloat(value, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: temp <0..2>")
		return
	}

	adv := a.providers.State().Advanced
	adv.Temperature = t
	if err := a.providers.UpdateAdvanced(ctx, adv); err != nil {
		fmt.Fprintf(a.out, "Cannot update temperature: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Temperature set to", a.providers.State().Advanced.Temperature)
}

func (a *App) setMaxTokens(ctx context.Context, value string) {
	n, err := strconv.Atoi(value)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: tokens <n>")
		return
	}

	adv := a.providers.State().Advanced
	adv.MaxTokens = n
	if err := a.providers.UpdateAdvanced(ctx, adv); err != nil {
		fmt.Fprintf(a.out, "Cannot update max tokens: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Max tokens set to", a.providers.State().Advanced.MaxTokens)
}
