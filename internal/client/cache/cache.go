// Package cache keeps the in-memory month-scoped map of entry summaries.
//
// The cache is the only state written by more than one actor: the session
// coordinator (optimistic writes, save confirmations, month refreshes) and
// the out-of-band push channel. All writers go through the same by-date
// upsert, so last-applied-wins is the consistency model. Readers must
// tolerate a brief window where an entry reflects an optimistic value that
// the backend has not confirmed yet.
package cache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/avoronin/daybook/internal/client/models"
	"github.com/avoronin/daybook/internal/timex"
)

type SummaryCache struct {
	mu      sync.RWMutex
	entries map[string]models.EntrySummary
}

func New() *SummaryCache {
	return &SummaryCache{entries: make(map[string]models.EntrySummary)}
}

// Get returns the summary for date, if cached.
func (c *SummaryCache) Get(date string) (models.EntrySummary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.entries[date]
	return s, ok
}

// Upsert stores s keyed by its date, replacing any previous record.
// At most one summary per date exists at any time.
func (c *SummaryCache) Upsert(s models.EntrySummary) {
	if s.Date == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[s.Date] = s
}

// ReplaceMonth drops every cached summary belonging to the given year and
// 1-based month, then inserts the provided records wholesale.
func (c *SummaryCache) ReplaceMonth(year, month int, summaries []models.EntrySummary) {
	prefix := monthPrefix(year, month)

	c.mu.Lock()
	defer c.mu.Unlock()

	for date := range c.entries {
		if strings.HasPrefix(date, prefix) {
			delete(c.entries, date)
		}
	}
	for _, s := range summaries {
		if s.Date != "" {
			c.entries[s.Date] = s
		}
	}
}

// Month returns the cached summaries of the given year and 1-based month,
// sorted by date.
func (c *SummaryCache) Month(year, month int) []models.EntrySummary {
	prefix := monthPrefix(year, month)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []models.EntrySummary
	for date, s := range c.entries {
		if strings.HasPrefix(date, prefix) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}

// Recent returns summaries with a confirmed AI summary from the window of
// `days` days ending at `until` (inclusive), sorted by date. Pending or
// empty AI fields are filtered out.
func (c *SummaryCache) Recent(until string, days int) []models.EntrySummary {
	end, err := timex.ParseISODate(until)
	if err != nil {
		return nil
	}
	start := end.AddDate(0, 0, -(days - 1))

	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []models.EntrySummary
	for date, s := range c.entries {
		if !s.HasAiSummary() {
			continue
		}
		d, err := timex.ParseISODate(date)
		if err != nil {
			continue
		}
		if d.Before(start) || d.After(end) {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}

func monthPrefix(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01") + "-"
}
