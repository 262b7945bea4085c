package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avoronin/daybook/internal/client/session"
	"github.com/avoronin/daybook/internal/timex"
)

func (a *App) open(ctx context.Context, date string) {
	if _, err := timex.ParseISODate(date); err != nil {
		fmt.Fprintln(a.out, "Invalid date, expected YYYY-MM-DD")
		return
	}

	if err := a.session.SetActiveDate(ctx, date); err != nil {
		fmt.Fprintf(a.out, "Could not load %s: %v\n", date, err)
		return
	}

	if body := a.session.Draft(); body != "" {
		fmt.Fprintln(a.out, body)
	} else {
		fmt.Fprintln(a.out, "(empty entry)")
	}
}

func (a *App) show() {
	if a.session.State().ActiveDate == "" {
		fmt.Fprintln(a.out, "No date open; use 'open <date>' first")
		return
	}
	body := a.session.Draft()
	if body == "" {
		fmt.Fprintln(a.out, "(empty entry)")
		return
	}
	fmt.Fprintln(a.out, body)
}

// edit replaces the whole draft with newly typed text. The save itself is
// left to the debounced autosave; 'save' forces it.
func (a *App) edit(ctx context.Context) {
	if a.session.State().ActiveDate == "" {
		fmt.Fprintln(a.out, "No date open; use 'open <date>' first")
		return
	}

	text, err := GetMultiline(a.reader, "- Enter entry text", a.out)
	if err != nil {
		a.log.Error(ctx, "reading entry text", "error", err)
		return
	}
	a.session.OnEdit(text)
}

func (a *App) save(ctx context.Context) {
	if err := a.session.Save(ctx, session.SaveOptions{}); err != nil {
		fmt.Fprintf(a.out, "Save failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Saved")
}

func (a *App) list(ctx context.Context, args []string) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if len(args) == 1 {
		t, err := time.Parse("2006-01", args[0])
		if err != nil {
			fmt.Fprintln(a.out, "Usage: list [YYYY-MM]")
			return
		}
		year, month = t.Year(), int(t.Month())
	}

	if err := a.session.RefreshMonth(ctx, year, month); err != nil {
		fmt.Fprintf(a.out, "Could not refresh %d-%02d: %v\n", year, month, err)
		// fall through to whatever is cached
	}

	summaries := a.cache.Month(year, month)
	if len(summaries) == 0 {
		fmt.Fprintln(a.out, "No entries")
		return
	}
	for _, s := range summaries {
		line := s.Date
		if s.Emoji != "" {
			line += " " + s.Emoji
		}
		if s.AiPending() {
			line += "  (summary pending)"
		} else if s.AiSummary != "" {
			line += "  " + s.AiSummary
		}
		fmt.Fprintln(a.out, line)
	}
}

func (a *App) greet(ctx context.Context) {
	if a.providers.Disabled() {
		fmt.Fprintln(a.out, "AI is disabled; pick a provider with 'use'")
		return
	}

	text, err := a.greeting.Refresh(ctx, timex.Today(time.Now()), a.config.Locale)
	if err != nil {
		fmt.Fprintf(a.out, "Greeting failed: %v\n", err)
		return
	}
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(a.out, "(no greeting)")
		return
	}
	fmt.Fprintln(a.out, text)
}

func (a *App) ping(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Ping(pingCtx); err != nil {
		a.setMode(ctx, ModeOffline)
		fmt.Fprintf(a.out, "Backend unreachable: %v\n", err)
		return
	}
	a.setMode(ctx, ModeOnline)
	fmt.Fprintln(a.out, "Backend is reachable")
}
