// Package api is the client for the journal backend: entry persistence plus
// the AI gateway it proxies. Transport failures are mapped to the shared
// sentinel errors so callers never see raw HTTP details.
package api

import (
	"context"

	"github.com/avoronin/daybook/internal/client/models"
)

// Client is the fixed request/response contract with the journal backend.
type Client interface {
	// ListEntriesByMonth returns summaries for every entry in the given
	// year and 1-based month.
	ListEntriesByMonth(ctx context.Context, year, month int) ([]models.EntrySummary, error)

	// GetEntryBody returns the body for date. A date with no document yet
	// yields an empty string and no error.
	GetEntryBody(ctx context.Context, date string) (string, error)

	// SaveEntryByDate persists body under date. A non-nil invocation asks
	// the backend to also generate an AI summary. Returns the
	// authoritative summary for the date.
	SaveEntryByDate(ctx context.Context, date, body string, ai *models.AiInvocation) (models.EntrySummary, error)

	// InvokeAiChat runs a chat completion through the given provider.
	InvokeAiChat(ctx context.Context, inv models.AiInvocation, messages []models.ChatMessage) (models.ChatResult, error)

	// ListAiModels returns the model ids available at the provider.
	ListAiModels(ctx context.Context, providerID, baseURL string) ([]string, error)

	// Ping probes backend reachability.
	Ping(ctx context.Context) error
}
