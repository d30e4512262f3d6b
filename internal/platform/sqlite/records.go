// Package sqlite provides a SQLite-backed record store built on the pure-Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/phrazzld/moments-api/internal/platform/migrate"
	"github.com/phrazzld/moments-api/internal/platform/sqlite/migrations"
	"github.com/phrazzld/moments-api/internal/store"
	"github.com/pressly/goose/v3/database"
	_ "modernc.org/sqlite"
)

// RecordStore persists records in a single SQLite table.
type RecordStore struct {
	db      *sql.DB
	timeNow func() time.Time
}

var _ store.RecordStore = (*RecordStore)(nil)

// Open opens (creating if needed) the database at path and applies pending
// migrations.
func Open(ctx context.Context, path string, log *slog.Logger) (*RecordStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := "file:" + filepath.Clean(path) +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Single writer.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := migrate.Up(ctx, db, database.DialectSQLite3, migrations.FS, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &RecordStore{db: db, timeNow: time.Now}, nil
}

// Close closes the underlying database.
func (s *RecordStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load implements store.RecordStore.
func (s *RecordStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := store.ValidateKey(key); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM records WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrRecordNotFound
	}
	if err != nil {
		return nil, store.LoadError(key, err)
	}
	return data, nil
}

// Save implements store.RecordStore.
func (s *RecordStore) Save(ctx context.Context, key string, data []byte) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return upsert(ctx, tx, key, data, s.timeNow().UTC().UnixMilli())
	})
	if err != nil {
		return store.SaveError(key, err)
	}
	return nil
}

func upsert(ctx context.Context, q store.DBTX, key string, data []byte, updatedAt int64) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO records (key, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, data, updatedAt)
	return err
}
