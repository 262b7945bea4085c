// Package secrets is the opaque keyed store for provider API keys. Values
// are sealed with AES-GCM before they touch the database; no plaintext
// secret is ever retained outside the current call.
package secrets

import "context"

type Repository interface {
	Put(ctx context.Context, providerID, value string) error
	// Get returns the stored secret, or "" if none exists.
	Get(ctx context.Context, providerID string) (string, error)
	Delete(ctx context.Context, providerID string) error
}
