package cache

import (
	"testing"

	"github.com/avoronin/daybook/internal/client/models"
	"github.com/avoronin/daybook/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsert_LastWriteWinsByDate(t *testing.T) {
	c := New()

	c.Upsert(models.EntrySummary{Date: "2025-10-31", Emoji: "😴"})
	c.Upsert(models.EntrySummary{Date: "2025-10-31", Emoji: "🙂", AiSummary: "better"})

	got, ok := c.Get("2025-10-31")
	require.True(t, ok)
	assert.Equal(t, "🙂", got.Emoji)
	assert.Equal(t, "better", got.AiSummary)

	month := c.Month(2025, 10)
	assert.Len(t, month, 1, "one summary per date")
}

func TestUpsert_IgnoresEmptyDate(t *testing.T) {
	c := New()
	c.Upsert(models.EntrySummary{Emoji: "🙂"})
	assert.Empty(t, c.Month(2025, 10))
}

func TestReplaceMonth(t *testing.T) {
	c := New()
	c.Upsert(models.EntrySummary{Date: "2025-10-01", Emoji: "a"})
	c.Upsert(models.EntrySummary{Date: "2025-10-15", Emoji: "b"})
	c.Upsert(models.EntrySummary{Date: "2025-09-30", Emoji: "keep"})

	c.ReplaceMonth(2025, 10, []models.EntrySummary{
		{Date: "2025-10-20", Emoji: "c"},
	})

	month := c.Month(2025, 10)
	require.Len(t, month, 1)
	assert.Equal(t, "2025-10-20", month[0].Date)

	// neighboring month untouched
	_, ok := c.Get("2025-09-30")
	assert.True(t, ok)
}

func TestMonth_SortedByDate(t *testing.T) {
	c := New()
	c.Upsert(models.EntrySummary{Date: "2025-10-20"})
	c.Upsert(models.EntrySummary{Date: "2025-10-03"})
	c.Upsert(models.EntrySummary{Date: "2025-10-11"})

	month := c.Month(2025, 10)
	require.Len(t, month, 3)
	assert.Equal(t, "2025-10-03", month[0].Date)
	assert.Equal(t, "2025-10-11", month[1].Date)
	assert.Equal(t, "2025-10-20", month[2].Date)
}

func TestRecent_FiltersWindowAndPending(t *testing.T) {
	c := New()
	c.Upsert(models.EntrySummary{Date: "2025-10-30", AiSummary: "fresh"})
	c.Upsert(models.EntrySummary{Date: "2025-10-29", AiSummary: common.AiSummaryPending})
	c.Upsert(models.EntrySummary{Date: "2025-10-28"})
	c.Upsert(models.EntrySummary{Date: "2025-09-01", AiSummary: "too old"})

	got := c.Recent("2025-10-31", 30)
	require.Len(t, got, 1)
	assert.Equal(t, "2025-10-30", got[0].Date)
}

func TestRecent_InclusiveBounds(t *testing.T) {
	c := New()
	c.Upsert(models.EntrySummary{Date: "2025-10-02", AiSummary: "first"})
	c.Upsert(models.EntrySummary{Date: "2025-10-31", AiSummary: "last"})
	c.Upsert(models.EntrySummary{Date: "2025-10-01", AiSummary: "outside"})

	got := c.Recent("2025-10-31", 30)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-10-02", got[0].Date)
	assert.Equal(t, "2025-10-31", got[1].Date)
}
