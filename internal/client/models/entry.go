// Package models defines the client-side data model: entry summaries
// returned by the journal backend and the AI provider configuration state.
package models

import "github.com/avoronin/daybook/internal/common"

// EntrySummary is the per-date metadata record kept in the month cache.
// Keyed uniquely by Date; the cache is last-write-wins per date.
type EntrySummary struct {
	Date      string `json:"date"`
	Emoji     string `json:"emoji,omitempty"`
	AiSummary string `json:"ai_summary,omitempty"`
	Language  string `json:"language,omitempty"`
	UpdatedAt int64  `json:"updated_at,omitempty"`
}

// AiPending reports whether the summary is an optimistic placeholder for an
// in-flight AI request.
func (e EntrySummary) AiPending() bool {
	return e.AiSummary == common.AiSummaryPending
}

// HasAiSummary reports whether a confirmed, non-empty AI summary is present.
func (e EntrySummary) HasAiSummary() bool {
	return e.AiSummary != "" && !e.AiPending()
}
