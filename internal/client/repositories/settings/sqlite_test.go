package settings

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE settings (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestSetGetDelete_RoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	got, err := r.Get(ctx, "ai_settings")
	require.NoError(t, err)
	assert.Nil(t, got, "missing key yields nil, not an error")

	require.NoError(t, r.Set(ctx, "ai_settings", []byte(`{"active_provider_id":"disabled"}`)))

	got, err = r.Get(ctx, "ai_settings")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"active_provider_id":"disabled"}`), got)

	// upsert replaces
	require.NoError(t, r.Set(ctx, "ai_settings", []byte(`{}`)))
	got, err = r.Get(ctx, "ai_settings")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), got)

	require.NoError(t, r.Delete(ctx, "ai_settings"))
	got, err = r.Get(ctx, "ai_settings")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGet_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT value FROM settings").
		WillReturnError(errors.New("disk I/O error"))

	r := NewSQLiteRepository(db)
	_, err = r.Get(context.Background(), "ai_settings")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get settings[ai_settings]")
}

func TestSet_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO settings").
		WillReturnError(errors.New("database is locked"))

	r := NewSQLiteRepository(db)
	err = r.Set(context.Background(), "k", []byte("v"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set settings[k]")
}
