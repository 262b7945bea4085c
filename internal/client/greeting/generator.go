// Package greeting derives a short contextual greeting from the last month
// of confirmed AI summaries.
//
// Generation is the only operation here that can be superseded mid-flight:
// the user may navigate or new summaries may land while a chat call is
// running. There is no way to abort the call, so every request mints a
// fencing token and a result is applied only if its token is still the
// latest at completion time.
package greeting

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/avoronin/daybook/internal/client/api"
	"github.com/avoronin/daybook/internal/client/cache"
	"github.com/avoronin/daybook/internal/client/models"
	"github.com/avoronin/daybook/internal/client/providers"
	"github.com/avoronin/daybook/internal/fencex"
	"github.com/avoronin/daybook/internal/logging"
)

// contextDays is the window of summaries fed to the model.
const contextDays = 30

type cacheKey struct {
	date      string
	locale    string
	signature uint64
}

// Generator produces and caches greetings. Safe for concurrent use.
type Generator struct {
	api       api.Client
	cache     *cache.SummaryCache
	providers *providers.Store
	log       logging.Logger

	tokens fencex.Counter

	mu       sync.Mutex
	results  map[cacheKey]string
	current  string
	onChange func(string)
}

func NewGenerator(apiClient api.Client, c *cache.SummaryCache, p *providers.Store, log logging.Logger) *Generator {
	return &Generator{
		api:       apiClient,
		cache:     c,
		providers: p,
		log:       log.With("component", "greeting"),
		results:   make(map[cacheKey]string),
	}
}

// Current returns the greeting most recently applied, possibly empty.
func (g *Generator) Current() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// OnChange registers an observer notified whenever a generated greeting is
// applied. Discarded stale results never notify.
func (g *Generator) OnChange(fn func(string)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onChange = fn
}

// Refresh generates a greeting for date in the given locale, using up to the
// last 30 days of confirmed summaries as context.
//
// A cache hit for the same (date, locale, context signature) short-circuits
// generation entirely. Generation is skipped when the active provider is the
// disabled sentinel. If a newer Refresh was issued before this one resolved,
// the result is discarded and the newer request's output wins, regardless of
// completion order.
func (g *Generator) Refresh(ctx context.Context, date, locale string) (string, error) {
	if g.providers.Disabled() {
		return "", nil
	}

	// minting first also makes a cache hit supersede an in-flight generation
	token := g.tokens.Next()

	recent := g.cache.Recent(date, contextDays)
	key := cacheKey{date: date, locale: locale, signature: signature(recent)}

	g.mu.Lock()
	if text, ok := g.results[key]; ok {
		g.apply(key, text)
		g.mu.Unlock()
		return text, nil
	}
	g.mu.Unlock()

	inv := g.providers.Invocation()
	if inv == nil {
		return "", nil
	}

	result, err := g.api.InvokeAiChat(ctx, *inv, promptMessages(date, locale, recent))
	if err != nil {
		g.log.Error(ctx, "greeting generation failed", "date", date, "error", err)
		return "", fmt.Errorf("generating greeting for %s: %w", date, err)
	}

	text := strings.TrimSpace(result.Text)

	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.tokens.Latest(token) {
		// superseded by a newer request; keep whatever it applies
		return "", nil
	}
	g.apply(key, text)
	return text, nil
}

// apply records text under key and publishes it. Caller holds g.mu.
func (g *Generator) apply(key cacheKey, text string) {
	g.results[key] = text
	g.current = text
	if g.onChange != nil {
		g.onChange(text)
	}
}

func promptMessages(date, locale string, recent []models.EntrySummary) []models.ChatMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "Today is %s. Write one short, warm greeting for a personal journal, in locale %q.\n", date, locale)
	if len(recent) > 0 {
		b.WriteString("Recent days, oldest first:\n")
		for _, s := range recent {
			fmt.Fprintf(&b, "- %s: %s\n", s.Date, s.AiSummary)
		}
	}
	return []models.ChatMessage{{Role: "user", Content: b.String()}}
}

// signature is a stable hash of the ordered (date, aiSummary) pairs used as
// generation context. Recent returns them sorted by date, so equal context
// always yields an equal signature.
func signature(recent []models.EntrySummary) uint64 {
	h := fnv.New64a()
	for _, s := range recent {
		h.Write([]byte(s.Date))
		h.Write([]byte{0})
		h.Write([]byte(s.AiSummary))
		h.Write([]byte{0})
	}
	return h.Sum64()
}
