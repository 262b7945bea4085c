package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/avoronin/daybook/internal/timex"
)

func (a *App) getStatus() string {
	parts := []string{}
	if date := a.session.State().ActiveDate; date != "" {
		if a.session.State().Dirty {
			date += "*"
		}
		parts = append(parts, date)
	}
	if mode := a.currentMode(); mode != "" {
		parts = append(parts, string(mode))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// Root runs the interactive loop until the user exits or stdin closes.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Daybook (type 'help' for commands)")

	go a.StartOnlineStatusWatcher(ctx, onlineCheckInterval)

	a.runREPL(ctx, bufio.NewScanner(os.Stdin))
}

func (a *App) runREPL(ctx context.Context, scanner *bufio.Scanner) {
	for {
		fmt.Fprintf(a.out, "day %s> ", a.getStatus())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(a.out, "Entries:   open <date>, today, show, edit, save, list [YYYY-MM], greet")
			fmt.Fprintln(a.out, "Providers: providers, use <id>, add <suffix> <url>, remove, seturl <url>,")
			fmt.Fprintln(a.out, "           setkey, model <name>, models, settings, prompt, temp <n>, tokens <n>")
			fmt.Fprintln(a.out, "Other:     ping, exit")

		case "open":
			if len(args) != 1 {
				fmt.Fprintln(a.out, "Usage: open <YYYY-MM-DD>")
				continue
			}
			a.open(ctx, args[0])

		case "today":
			a.open(ctx, timex.Today(time.Now()))

		case "show":
			a.show()

		case "edit":
			a.edit(ctx)

		case "save":
			a.save(ctx)

		case "l", "list":
			a.list(ctx, args)

		case "greet":
			a.greet(ctx)

		case "providers":
			a.listProviders()

		case "use":
			if len(args) != 1 {
				fmt.Fprintln(a.out, "Usage: use <provider-id>")
				continue
			}
			a.useProvider(ctx, args[0])

		case "add":
			if len(args) != 2 {
				fmt.Fprintln(a.out, "Usage: add <suffix> <base-url>")
				continue
			}
			a.addProvider(ctx, args[0], args[1])

		case "remove":
			a.removeProvider(ctx)

		case "seturl":
			if len(args) != 1 {
				fmt.Fprintln(a.out, "Usage: seturl <base-url>")
				continue
			}
			a.setBaseURL(ctx, args[0])

		case "setkey":
			a.setSecret(ctx)

		case "model":
			if len(args) != 1 {
				fmt.Fprintln(a.out, "Usage: model <name>")
				continue
			}
			a.setModel(ctx, args[0])

		case "models":
			a.listModels(ctx)

		case "settings":
			a.showSettings()

		case "prompt":
			a.setPrompt(ctx)

		case "temp":
			if len(args) != 1 {
				fmt.Fprintln(a.out, "Usage: temp <0..2>")
				continue
			}
			a.setTemperature(ctx, args[0])

		case "tokens":
			if len(args) != 1 {
				fmt.Fprintln(a.out, "Usage: tokens <n>")
				continue
			}
			a.setMaxTokens(ctx, args[0])

		case "ping":
			a.ping(ctx)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}
