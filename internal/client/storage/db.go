// Package storage opens and migrates the local sqlite database and bundles
// the repositories built on top of it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avoronin/daybook/internal/client/repositories/secrets"
	"github.com/avoronin/daybook/internal/client/repositories/settings"
	"github.com/avoronin/daybook/internal/client/storage/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	Settings settings.Repository
	Secrets  secrets.Repository
	DB       *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	secretRepo, err := secrets.NewSQLiteRepository(ctx, db, settings.NewSQLiteRepository(db))
	if err != nil {
		return nil, err
	}

	repos := &Repositories{
		Settings: settings.NewSQLiteRepository(db),
		Secrets:  secretRepo,
		DB:       db,
	}
	return repos, nil
}
