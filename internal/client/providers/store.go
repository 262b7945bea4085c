// Package providers maintains the set of AI provider configurations, the
// active selection, and the shared generation parameters. State is loaded
// from and saved to the local settings repository; it is sanitized on every
// load and mutation so consumers always observe a valid configuration.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/avoronin/daybook/internal/client/models"
	"github.com/avoronin/daybook/internal/client/repositories/secrets"
	"github.com/avoronin/daybook/internal/client/repositories/settings"
	"github.com/avoronin/daybook/internal/common"
	"github.com/avoronin/daybook/internal/logging"
)

const settingsKey = "ai_settings"

var suffixCleaner = regexp.MustCompile(`[^a-z0-9_-]+`)

type Store struct {
	mu      sync.Mutex
	repo    settings.Repository
	secrets secrets.Repository
	log     logging.Logger

	state models.AiSettingsState

	// pendingURL holds, per provider id, a normalized risky URL awaiting
	// its one-shot confirmation. Submitting a different URL replaces the
	// pending value and restarts the two-step gesture.
	pendingURL map[string]string
}

func NewStore(repo settings.Repository, secretRepo secrets.Repository, log logging.Logger) *Store {
	return &Store{
		repo:       repo,
		secrets:    secretRepo,
		log:        log.With("component", "providers"),
		state:      SanitizeState(models.AiSettingsState{}),
		pendingURL: make(map[string]string),
	}
}

// Load reads the persisted state and sanitizes it. A missing or corrupt
// record yields the default state rather than an error; only a repository
// failure is reported.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.repo.Get(ctx, settingsKey)
	if err != nil {
		return fmt.Errorf("loading ai settings: %w", err)
	}

	var raw models.AiSettingsState
	if data != nil {
		if err := json.Unmarshal(data, &raw); err != nil {
			s.log.Warn(ctx, "discarding corrupt ai settings", "error", err)
			raw = models.AiSettingsState{}
		}
	}

	s.state = SanitizeState(raw)
	return nil
}

func (s *Store) save(ctx context.Context) error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encoding ai settings: %w", err)
	}
	if err := s.repo.Set(ctx, settingsKey, data); err != nil {
		return fmt.Errorf("saving ai settings: %w", err)
	}
	return nil
}

// commit persists the state, restoring prev when the write fails so the
// in-memory view never drifts from what the caller was told.
func (s *Store) commit(ctx context.Context, prev models.AiSettingsState) error {
	if err := s.save(ctx); err != nil {
		s.state = prev
		return err
	}
	return nil
}

// cloneState copies the state with its own provider map.
func (s *Store) cloneState() models.AiSettingsState {
	out := s.state
	out.Providers = make(map[string]models.AiProviderConfig, len(s.state.Providers))
	for id, p := range s.state.Providers {
		out.Providers[id] = p
	}
	return out
}

// State returns a copy of the current settings state.
func (s *Store) State() models.AiSettingsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneState()
}

// Active returns the configuration of the active provider.
func (s *Store) Active() models.AiProviderConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active()
}

func (s *Store) active() models.AiProviderConfig {
	return s.state.Providers[s.state.ActiveProviderID]
}

// Disabled reports whether the active provider is the disabled sentinel.
func (s *Store) Disabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disabled()
}

func (s *Store) disabled() bool {
	return s.state.ActiveProviderID == common.ProviderDisabledID
}

// SetActiveProvider switches the active selection to an existing provider.
func (s *Store) SetActiveProvider(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Providers[id]; !ok {
		return common.ErrorProviderNotFound
	}
	prev := s.cloneState()
	s.state.ActiveProviderID = id
	return s.commit(ctx, prev)
}

// AddCustomProvider creates a new endpoint-editable provider whose id is
// derived from the user-chosen suffix, and makes it active. The base URL
// passes through the same risk gate as any endpoint edit: a risky URL is
// rejected once with ErrorRiskyBaseURL and accepted when the identical
// normalized URL is submitted again.
func (s *Store) AddCustomProvider(ctx context.Context, suffix, baseURL string) (models.AiProviderConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slug := slugify(suffix)
	if slug == "" {
		return models.AiProviderConfig{}, common.ErrorSuffixRequired
	}

	id := common.CustomProviderPrefix + slug
	if _, ok := s.state.Providers[id]; ok {
		return models.AiProviderConfig{}, common.ErrorProviderExists
	}

	normalized, err := s.passRiskGate(id, baseURL)
	if err != nil {
		return models.AiProviderConfig{}, err
	}

	p := models.AiProviderConfig{
		ID:       id,
		Label:    strings.TrimSpace(suffix),
		BaseURL:  normalized,
		Editable: true,
		Type:     models.ProviderCustom,
	}
	prev := s.cloneState()
	s.state.Providers[id] = p
	s.state.ActiveProviderID = id

	if err := s.commit(ctx, prev); err != nil {
		return models.AiProviderConfig{}, err
	}
	return p, nil
}

// RemoveActiveCustom deletes the active provider's configuration and its
// stored secret, then resets the selection to the disabled sentinel. Only
// valid while a custom provider is active.
func (s *Store) RemoveActiveCustom(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.active()
	if !active.IsCustom() {
		return common.ErrorNotCustomProvider
	}

	if err := s.secrets.Delete(ctx, active.ID); err != nil {
		return fmt.Errorf("deleting secret: %w", err)
	}

	prev := s.cloneState()
	delete(s.state.Providers, active.ID)
	delete(s.pendingURL, active.ID)
	s.state.ActiveProviderID = common.ProviderDisabledID

	return s.commit(ctx, prev)
}

// SetBaseURL updates an editable provider's endpoint, applying the two-step
// risk gate.
func (s *Store) SetBaseURL(ctx context.Context, id, baseURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.state.Providers[id]
	if !ok {
		return common.ErrorProviderNotFound
	}
	if !p.Editable {
		return common.ErrorProviderReadOnly
	}

	normalized, err := s.passRiskGate(id, baseURL)
	if err != nil {
		return err
	}

	prev := s.cloneState()
	p.BaseURL = normalized
	s.state.Providers[id] = p
	return s.commit(ctx, prev)
}

// passRiskGate classifies the URL and enforces the one-shot confirmation:
// a risky URL is accepted only when the identical normalized URL was the
// one that triggered the previous warning for the same provider id.
func (s *Store) passRiskGate(id, baseURL string) (string, error) {
	normalized, verdict, err := ClassifyBaseURL(baseURL)
	if err != nil {
		delete(s.pendingURL, id)
		return "", err
	}

	if verdict == RiskWarn {
		if s.pendingURL[id] != normalized {
			s.pendingURL[id] = normalized
			return "", common.ErrorRiskyBaseURL
		}
	}
	delete(s.pendingURL, id)
	return normalized, nil
}

// SetModel overrides the model of an existing provider.
func (s *Store) SetModel(ctx context.Context, id, model string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.state.Providers[id]
	if !ok {
		return common.ErrorProviderNotFound
	}
	prev := s.cloneState()
	p.Model = model
	s.state.Providers[id] = p
	return s.commit(ctx, prev)
}

// SetSecret stores, replaces, or clears the API key of a provider. The
// reserved placeholder value means "keep the stored secret" and is never
// persisted literally.
func (s *Store) SetSecret(ctx context.Context, id, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.state.Providers[id]
	if !ok {
		return common.ErrorProviderNotFound
	}

	if value == common.SecretPlaceholder {
		return nil
	}

	if value == "" {
		if err := s.secrets.Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting secret: %w", err)
		}
		p.HasSecret = false
	} else {
		if err := s.secrets.Put(ctx, id, value); err != nil {
			return fmt.Errorf("storing secret: %w", err)
		}
		p.HasSecret = true
	}

	prev := s.cloneState()
	s.state.Providers[id] = p
	return s.commit(ctx, prev)
}

// UpdateAdvanced replaces the shared generation parameters, clamping them
// into their documented ranges.
func (s *Store) UpdateAdvanced(ctx context.Context, adv models.AiAdvancedSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.cloneState()
	s.state.Advanced = clampAdvanced(adv)
	return s.commit(ctx, prev)
}

// Invocation produces the payload for an AI call, or nil when the active
// provider is the disabled sentinel.
func (s *Store) Invocation() *models.AiInvocation {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disabled() {
		return nil
	}
	active := s.active()
	adv := s.state.Advanced
	return &models.AiInvocation{
		ProviderID:  active.ID,
		BaseURL:     active.BaseURL,
		Model:       active.Model,
		Prompt:      adv.Prompt,
		Temperature: adv.Temperature,
		MaxTokens:   adv.MaxTokens,
	}
}

func slugify(suffix string) string {
	slug := strings.ToLower(strings.TrimSpace(suffix))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = suffixCleaner.ReplaceAllString(slug, "")
	return strings.Trim(slug, "-")
}
