package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/clinicdesk/internal/client/storage/migrations"
	"github.com/dmitrijs2005/clinicdesk/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// MemoryPath selects the in-memory implementation in Open.
const MemoryPath = ":memory:"

// RunMigrations applies the embedded schema migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate storage: %w", err)
	}
	return nil
}

// OpenDatabase opens the SQLite file at dsn and migrates it.
// A single connection is kept: the client is single-user and SQLite
// serialises writers anyway.
func OpenDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open storage %s: %w", dsn, err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Open returns the storage selected by path: MemoryStorage for ":memory:",
// SQLiteStorage otherwise.
func Open(ctx context.Context, path string) (Storage, error) {
	if path == MemoryPath {
		return NewMemoryStorage(), nil
	}
	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}
	db, err := OpenDatabase(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewSQLiteStorage(db), nil
}
