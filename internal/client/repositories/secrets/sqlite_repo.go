package secrets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoronin/daybook/internal/client/repositories/settings"
	"github.com/avoronin/daybook/internal/cryptox"
)

const (
	seedKey = "secret_seed"
	saltKey = "secret_salt"
)

type SQLiteRepository struct {
	db  *sql.DB
	key []byte
}

// NewSQLiteRepository opens the secret store. The sealing key is derived
// from a per-installation random seed kept in the settings repository; the
// seed is minted on first use.
func NewSQLiteRepository(ctx context.Context, db *sql.DB, meta settings.Repository) (*SQLiteRepository, error) {
	seed, err := loadOrCreate(ctx, meta, seedKey, 32)
	if err != nil {
		return nil, err
	}
	salt, err := loadOrCreate(ctx, meta, saltKey, 16)
	if err != nil {
		return nil, err
	}

	return &SQLiteRepository{db: db, key: cryptox.DeriveKey(seed, salt)}, nil
}

func loadOrCreate(ctx context.Context, meta settings.Repository, key string, n int) ([]byte, error) {
	value, err := meta.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if value != nil {
		return value, nil
	}

	value, err = cryptox.GenerateRandBytes(n)
	if err != nil {
		return nil, err
	}
	if err := meta.Set(ctx, key, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, providerID, value string) error {
	ciphertext, nonce, err := cryptox.Seal([]byte(value), r.key)
	if err != nil {
		return fmt.Errorf("failed to seal secret: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO secrets (provider_id, value, nonce) VALUES (?, ?, ?)
		ON CONFLICT(provider_id) DO UPDATE SET value = excluded.value, nonce = excluded.nonce
	`, providerID, ciphertext, nonce)
	if err != nil {
		return fmt.Errorf("failed to store secret for %s: %w", providerID, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, providerID string) (string, error) {
	var ciphertext, nonce []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT value, nonce FROM secrets WHERE provider_id = ?`, providerID).
		Scan(&ciphertext, &nonce)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read secret for %s: %w", providerID, err)
	}

	plaintext, err := cryptox.Open(ciphertext, nonce, r.key)
	if err != nil {
		return "", fmt.Errorf("failed to open secret for %s: %w", providerID, err)
	}
	return string(plaintext), nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, providerID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM secrets WHERE provider_id = ?`, providerID)
	if err != nil {
		return fmt.Errorf("failed to delete secret for %s: %w", providerID, err)
	}
	return nil
}
