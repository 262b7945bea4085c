package secrets

import (
	"context"
	"database/sql"
	"testing"

	"github.com/avoronin/daybook/internal/client/repositories/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE settings (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);

CREATE TABLE secrets (
  provider_id TEXT PRIMARY KEY,
  value       BLOB NOT NULL,
  nonce       BLOB NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestPutGetDelete_RoundTrip(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	r, err := NewSQLiteRepository(ctx, db, settings.NewSQLiteRepository(db))
	require.NoError(t, err)

	got, err := r.Get(ctx, "openai")
	require.NoError(t, err)
	assert.Equal(t, "", got, "missing secret yields empty string")

	require.NoError(t, r.Put(ctx, "openai", "sk-test-123"))

	got, err = r.Get(ctx, "openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", got)

	// overwrite
	require.NoError(t, r.Put(ctx, "openai", "sk-test-456"))
	got, err = r.Get(ctx, "openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-test-456", got)

	require.NoError(t, r.Delete(ctx, "openai"))
	got, err = r.Get(ctx, "openai")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestSecretsAreSealedAtRest(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	r, err := NewSQLiteRepository(ctx, db, settings.NewSQLiteRepository(db))
	require.NoError(t, err)

	require.NoError(t, r.Put(ctx, "custom-team-a", "sk-plaintext"))

	var stored []byte
	require.NoError(t, db.QueryRow(`SELECT value FROM secrets WHERE provider_id = ?`, "custom-team-a").Scan(&stored))
	assert.NotContains(t, string(stored), "sk-plaintext")
}

func TestSealingKeyIsStableAcrossReopen(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	meta := settings.NewSQLiteRepository(db)

	r1, err := NewSQLiteRepository(ctx, db, meta)
	require.NoError(t, err)
	require.NoError(t, r1.Put(ctx, "openai", "sk-persist"))

	// a second repository over the same settings store derives the same key
	r2, err := NewSQLiteRepository(ctx, db, meta)
	require.NoError(t, err)

	got, err := r2.Get(ctx, "openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-persist", got)
}
