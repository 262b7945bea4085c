package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avoronin/daybook/internal/client/models"
	"github.com/avoronin/daybook/internal/common"
)

// HTTPClient talks JSON over HTTP to the journal backend. Every request
// carries the persistent installation id for server-side log correlation.
type HTTPClient struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, clientID string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		clientID:   clientID,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.ClientIDHeaderName, c.clientID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return common.ErrorUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapStatus(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *HTTPClient) mapStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return common.ErrorUnavailable
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("backend error: %s: %s", resp.Status, string(b))
	}
}

func (c *HTTPClient) ListEntriesByMonth(ctx context.Context, year, month int) ([]models.EntrySummary, error) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(year))
	q.Set("month", strconv.Itoa(month))

	var result []models.EntrySummary
	if err := c.do(ctx, http.MethodGet, "/api/entries?"+q.Encode(), nil, &result); err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return result, nil
}

type entryBodyResponse struct {
	Body string `json:"body"`
}

func (c *HTTPClient) GetEntryBody(ctx context.Context, date string) (string, error) {
	var resp entryBodyResponse
	err := c.do(ctx, http.MethodGet, "/api/entries/"+url.PathEscape(date)+"/body", nil, &resp)
	if errors.Is(err, common.ErrorNotFound) {
		// no document yet for that date
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading body: %w", err)
	}
	return resp.Body, nil
}

type saveEntryRequest struct {
	Body string               `json:"body"`
	Ai   *models.AiInvocation `json:"ai,omitempty"`
}

func (c *HTTPClient) SaveEntryByDate(ctx context.Context, date, body string, ai *models.AiInvocation) (models.EntrySummary, error) {
	req := saveEntryRequest{Body: body, Ai: ai}

	var summary models.EntrySummary
	if err := c.do(ctx, http.MethodPut, "/api/entries/"+url.PathEscape(date), req, &summary); err != nil {
		return models.EntrySummary{}, fmt.Errorf("saving entry: %w", err)
	}
	return summary, nil
}

type chatRequest struct {
	Provider    string               `json:"provider"`
	BaseURL     string               `json:"base_url"`
	Model       string               `json:"model,omitempty"`
	Messages    []models.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens"`
}

func (c *HTTPClient) InvokeAiChat(ctx context.Context, inv models.AiInvocation, messages []models.ChatMessage) (models.ChatResult, error) {
	req := chatRequest{
		Provider:    inv.ProviderID,
		BaseURL:     inv.BaseURL,
		Model:       inv.Model,
		Messages:    messages,
		Temperature: inv.Temperature,
		MaxTokens:   inv.MaxTokens,
	}

	var result models.ChatResult
	if err := c.do(ctx, http.MethodPost, "/api/ai/chat", req, &result); err != nil {
		return models.ChatResult{}, fmt.Errorf("ai chat: %w", err)
	}
	return result, nil
}

type listModelsRequest struct {
	Provider string `json:"provider"`
	BaseURL  string `json:"base_url"`
}

type listModelsResponse struct {
	Models []string `json:"models"`
}

func (c *HTTPClient) ListAiModels(ctx context.Context, providerID, baseURL string) ([]string, error) {
	req := listModelsRequest{Provider: providerID, BaseURL: baseURL}

	var resp listModelsResponse
	if err := c.do(ctx, http.MethodPost, "/api/ai/models", req, &resp); err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	return resp.Models, nil
}

type pingResponse struct {
	Status string `json:"status"`
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var resp pingResponse
	if err := c.do(ctx, http.MethodGet, "/api/ping", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "OK" {
		return common.ErrorUnavailable
	}
	return nil
}
