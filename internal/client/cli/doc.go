// Package cli provides the interactive Daybook command-line client.
//
// It wires configuration, the local sqlite store, the backend API client,
// the provider configuration store, and the journal session into an
// interactive REPL. Typical flow: open a date, type into it, let the idle
// autosave persist it, browse the month, tweak AI providers.
//
// Key features:
//   - Open a date and edit its entry (debounced background saves)
//   - List a month of entries with emoji and AI summaries
//   - Generate a contextual greeting from recent summaries
//   - Manage AI providers: built-ins, custom endpoints, models, API keys
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
