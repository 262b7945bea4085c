// Package settings is a small keyed blob store backed by sqlite. It holds
// the serialized provider configuration state and per-installation metadata
// such as the client id and the secret-store seed.
package settings

import "context"

type Repository interface {
	// Get returns the value stored under key, or nil if absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
