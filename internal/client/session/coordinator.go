// Package session binds exactly one journal date to the editor at a time
// and coordinates edits, debounced saves, loads, and the month cache.
//
// Correctness does not depend on completion order of in-flight calls: a
// navigation flush always captures the previous date and draft before the
// session is rebound, and late load results are dropped unless the session
// still matches the date they were requested for. There is no true
// cancellation; superseded calls finish remotely and are ignored locally.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avoronin/daybook/internal/client/api"
	"github.com/avoronin/daybook/internal/client/cache"
	"github.com/avoronin/daybook/internal/client/models"
	"github.com/avoronin/daybook/internal/client/providers"
	"github.com/avoronin/daybook/internal/common"
	"github.com/avoronin/daybook/internal/logging"
	"github.com/avoronin/daybook/internal/timex"
	"github.com/benbjohnson/clock"
)

var ErrNoActiveDate = errors.New("no active date")

// SessionState tracks the binding between the editor and a date.
//
// LoadingDate is non-empty only while a load for that exact date is in
// flight. Dirty means an edit exists that has not been confirmed persisted
// under the current active date.
type SessionState struct {
	ActiveDate  string
	Dirty       bool
	LoadedDate  string
	LoadingDate string
}

// SaveOptions selects the target and content of a save. Zero values mean
// "the active date" and "the current draft". TriggerAI requests an AI
// summary alongside persistence; only the idle autosave path sets it.
type SaveOptions struct {
	DateOverride    string
	ContentOverride *string
	TriggerAI       bool
}

// Coordinator owns the draft and session state exclusively. All mutations
// happen under one mutex; external calls are made outside it.
type Coordinator struct {
	api       api.Client
	cache     *cache.SummaryCache
	providers *providers.Store
	clock     clock.Clock
	log       logging.Logger
	sched     *Scheduler

	mu      sync.Mutex
	state   SessionState
	draft   string
	onDraft func(string)
}

func NewCoordinator(apiClient api.Client, c *cache.SummaryCache, p *providers.Store, clk clock.Clock, quiet time.Duration, log logging.Logger) *Coordinator {
	coord := &Coordinator{
		api:       apiClient,
		cache:     c,
		providers: p,
		clock:     clk,
		log:       log.With("component", "session"),
	}
	coord.sched = NewScheduler(clk, quiet, coord.autosave)
	return coord
}

// State returns a snapshot of the session state.
func (c *Coordinator) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Draft returns the in-memory text of the active date.
func (c *Coordinator) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// OnDraftChange registers an observer notified on every draft mutation,
// including optimistic ones that have not been persisted yet.
func (c *Coordinator) OnDraftChange(fn func(string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onDraft = fn
}

func (c *Coordinator) publishDraft(text string) {
	c.mu.Lock()
	fn := c.onDraft
	c.mu.Unlock()
	if fn != nil {
		fn(text)
	}
}

// SetActiveDate rebinds the editor to date. The previous date is flushed
// first when dirty, using the date and draft captured before the rebind, so
// content typed for one day can never be persisted under another. The flush
// never requests an AI summary. A load for the new date is then issued.
func (c *Coordinator) SetActiveDate(ctx context.Context, date string) error {
	c.mu.Lock()
	if date == c.state.ActiveDate {
		c.mu.Unlock()
		return nil
	}
	prevDate := c.state.ActiveDate
	prevDraft := c.draft
	wasDirty := c.state.Dirty

	c.state = SessionState{ActiveDate: date}
	c.draft = ""
	c.mu.Unlock()

	c.sched.Cancel()
	c.publishDraft("")

	if wasDirty && prevDate != "" {
		content := prevDraft
		opts := SaveOptions{DateOverride: prevDate, ContentOverride: &content}
		if err := c.Save(ctx, opts); err != nil {
			// non-fatal: the edits stay in the optimistic cache entry and
			// the failure is already logged
			c.log.Warn(ctx, "navigation flush failed", "date", prevDate)
		}
	}

	return c.LoadBody(ctx, date)
}

// OnEdit records new editor content, marks the session dirty, and re-arms
// the autosave timer. Nothing is persisted synchronously.
func (c *Coordinator) OnEdit(text string) {
	c.mu.Lock()
	if c.state.ActiveDate == "" {
		c.mu.Unlock()
		return
	}
	c.draft = text
	c.state.Dirty = true
	c.mu.Unlock()

	c.publishDraft(text)
	c.sched.Arm()
}

// LoadBody hydrates the draft for date. Idempotent per date: an already
// loaded or currently loading date is not fetched again. A result that
// arrives after the session moved on, or after the user started typing, is
// discarded.
func (c *Coordinator) LoadBody(ctx context.Context, date string) error {
	c.mu.Lock()
	if c.state.LoadedDate == date || c.state.LoadingDate == date {
		c.mu.Unlock()
		return nil
	}
	c.state.LoadingDate = date
	c.mu.Unlock()

	body, err := c.api.GetEntryBody(ctx, date)

	c.mu.Lock()
	if c.state.LoadingDate == date {
		c.state.LoadingDate = ""
	}
	if err != nil {
		c.mu.Unlock()
		c.log.Error(ctx, "load failed", "date", date, "error", err)
		return fmt.Errorf("loading %s: %w", date, err)
	}
	if c.state.ActiveDate != date || c.state.Dirty {
		// stale result for an abandoned date, or edits arrived first
		c.mu.Unlock()
		return nil
	}
	c.draft = body
	c.state.LoadedDate = date
	c.mu.Unlock()

	c.publishDraft(body)
	return nil
}

// Save persists the selected date and content. An optimistic summary is
// written to the cache before the call; on success it is replaced with the
// authoritative one and the month is refreshed. On failure the optimistic
// entry is deliberately left in place and the local edits are kept.
func (c *Coordinator) Save(ctx context.Context, opts SaveOptions) error {
	c.mu.Lock()
	date := c.state.ActiveDate
	if opts.DateOverride != "" {
		date = opts.DateOverride
	}
	body := c.draft
	if opts.ContentOverride != nil {
		body = *opts.ContentOverride
	}
	c.mu.Unlock()

	if date == "" {
		return ErrNoActiveDate
	}

	optimistic := models.EntrySummary{Date: date, UpdatedAt: c.clock.Now().Unix()}
	if prev, ok := c.cache.Get(date); ok {
		optimistic.Emoji = prev.Emoji
		optimistic.Language = prev.Language
		optimistic.AiSummary = prev.AiSummary
	}

	var payload *models.AiInvocation
	if opts.TriggerAI {
		// nil when the active provider is the disabled sentinel
		payload = c.providers.Invocation()
		if payload != nil {
			optimistic.AiSummary = common.AiSummaryPending
		}
	}
	c.cache.Upsert(optimistic)

	summary, err := c.api.SaveEntryByDate(ctx, date, body, payload)
	if err != nil {
		c.log.Error(ctx, "save failed", "date", date, "error", err)
		return fmt.Errorf("saving %s: %w", date, err)
	}

	c.cache.Upsert(summary)

	c.mu.Lock()
	if c.state.ActiveDate == date {
		c.state.Dirty = false
		c.state.LoadedDate = date
	}
	c.mu.Unlock()

	if year, month, merr := timex.MonthOf(date); merr == nil {
		if rerr := c.RefreshMonth(ctx, year, month); rerr != nil {
			c.log.Warn(ctx, "post-save month refresh failed", "date", date, "error", rerr)
		}
	}

	return nil
}

// autosave is the scheduler's save callback. It is a no-op while the
// session is clean.
func (c *Coordinator) autosave(triggerAI bool) {
	ctx := context.Background()

	c.mu.Lock()
	skip := !c.state.Dirty || c.state.ActiveDate == ""
	c.mu.Unlock()
	if skip {
		return
	}

	if err := c.Save(ctx, SaveOptions{TriggerAI: triggerAI}); err != nil {
		c.log.Error(ctx, "autosave failed", "error", err)
	}
}

// Flush cancels any pending autosave and persists the current draft
// immediately when dirty. Called on unmount, visibility loss, and before
// leaving the editing surface. Never requests an AI summary.
func (c *Coordinator) Flush() {
	c.sched.Flush()
}

// RefreshMonth rehydrates the cache for one month wholesale.
func (c *Coordinator) RefreshMonth(ctx context.Context, year, month int) error {
	summaries, err := c.api.ListEntriesByMonth(ctx, year, month)
	if err != nil {
		return fmt.Errorf("refreshing %d-%02d: %w", year, month, err)
	}
	c.cache.ReplaceMonth(year, month, summaries)
	return nil
}

// ApplyRemoteSummary merges an out-of-band metadata update from the push
// channel, using the same by-date upsert as save results.
func (c *Coordinator) ApplyRemoteSummary(s models.EntrySummary) {
	c.cache.Upsert(s)
}
