package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDatabase_MigratesAndWiresRepositories(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "daybook.db")

	repos, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.DB.Close() })

	require.NoError(t, repos.Settings.Set(ctx, "k", []byte("v")))
	got, err := repos.Settings.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, repos.Secrets.Put(ctx, "openai", "sk-abc"))
	secret, err := repos.Secrets.Get(ctx, "openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-abc", secret)
}

func TestInitDatabase_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "daybook.db")

	repos, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, repos.DB.Close())

	// reopening an already-migrated database must not fail
	repos, err = InitDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, repos.DB.Close())
}
