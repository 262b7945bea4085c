package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avoronin/daybook/internal/client/models"
	"github.com/avoronin/daybook/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEntriesByMonth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/entries", r.URL.Path)
		assert.Equal(t, "2025", r.URL.Query().Get("year"))
		assert.Equal(t, "10", r.URL.Query().Get("month"))
		assert.Equal(t, "cid-1", r.Header.Get(common.ClientIDHeaderName))

		_ = json.NewEncoder(w).Encode([]models.EntrySummary{
			{Date: "2025-10-30", Emoji: "🙂"},
			{Date: "2025-10-31", AiSummary: "a good day"},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "cid-1")
	got, err := c.ListEntriesByMonth(context.Background(), 2025, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-10-30", got[0].Date)
	assert.Equal(t, "a good day", got[1].AiSummary)
}

func TestGetEntryBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/entries/2025-10-31/body":
			_ = json.NewEncoder(w).Encode(map[string]string{"body": "Today I learned..."})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "cid-1")

	body, err := c.GetEntryBody(context.Background(), "2025-10-31")
	require.NoError(t, err)
	assert.Equal(t, "Today I learned...", body)

	// no document yet: 404 maps to empty body, no error
	body, err = c.GetEntryBody(context.Background(), "2025-11-01")
	require.NoError(t, err)
	assert.Equal(t, "", body)
}

func TestSaveEntryByDate_WithAiPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/entries/2025-10-31", r.URL.Path)

		var req saveEntryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "dear diary", req.Body)
		require.NotNil(t, req.Ai)
		assert.Equal(t, "openai", req.Ai.ProviderID)

		_ = json.NewEncoder(w).Encode(models.EntrySummary{
			Date:      "2025-10-31",
			AiSummary: "a short summary",
			UpdatedAt: 1761868800,
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "cid-1")
	inv := &models.AiInvocation{ProviderID: "openai", BaseURL: "https://api.openai.com/v1", Temperature: 0.7, MaxTokens: 512}

	summary, err := c.SaveEntryByDate(context.Background(), "2025-10-31", "dear diary", inv)
	require.NoError(t, err)
	assert.Equal(t, "a short summary", summary.AiSummary)
}

func TestSaveEntryByDate_OmitsAiWhenNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, hasAi := raw["ai"]
		assert.False(t, hasAi, "ai field must be omitted when no payload is given")

		_ = json.NewEncoder(w).Encode(models.EntrySummary{Date: "2025-10-31"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "cid-1")
	_, err := c.SaveEntryByDate(context.Background(), "2025-10-31", "body", nil)
	require.NoError(t, err)
}

func TestInvokeAiChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/chat", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "custom-team-a", req.Provider)
		require.Len(t, req.Messages, 2)

		_ = json.NewEncoder(w).Encode(models.ChatResult{Text: "hello!", CompletionTokens: 3})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "cid-1")
	inv := models.AiInvocation{ProviderID: "custom-team-a", BaseURL: "https://gateway.internal/v1", MaxTokens: 64}
	msgs := []models.ChatMessage{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "greet me"},
	}

	res, err := c.InvokeAiChat(context.Background(), inv, msgs)
	require.NoError(t, err)
	assert.Equal(t, "hello!", res.Text)
}

func TestListAiModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/models", r.URL.Path)
		_ = json.NewEncoder(w).Encode(listModelsResponse{Models: []string{"gpt-4o-mini", "gpt-4o"}})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "cid-1")
	got, err := c.ListAiModels(context.Background(), "openai", "https://api.openai.com/v1")
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4o-mini", "gpt-4o"}, got)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, common.ErrorUnauthorized},
		{"forbidden", http.StatusForbidden, common.ErrorUnauthorized},
		{"unavailable", http.StatusServiceUnavailable, common.ErrorUnavailable},
		{"bad gateway", http.StatusBadGateway, common.ErrorUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL, "cid-1")
			_, err := c.ListEntriesByMonth(context.Background(), 2025, 10)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(pingResponse{Status: "OK"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "cid-1")
	require.NoError(t, c.Ping(context.Background()))

	srv.Close()
	require.ErrorIs(t, c.Ping(context.Background()), common.ErrorUnavailable)
}
