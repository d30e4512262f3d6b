package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/phrazzld/moments-api/internal/platform/migrate"
	"github.com/phrazzld/moments-api/internal/platform/postgres/migrations"
	"github.com/phrazzld/moments-api/internal/store"
	"github.com/pressly/goose/v3/database"
)

// RecordStore implements store.RecordStore on PostgreSQL.
type RecordStore struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ store.RecordStore = (*RecordStore)(nil)

// Open connects to url, configures the pool and applies pending migrations.
func Open(ctx context.Context, url string, log *slog.Logger) (*RecordStore, error) {
	if log == nil {
		log = slog.Default()
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := migrate.Up(ctx, db, database.DialectPostgres, migrations.FS, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info("database connection established")
	return NewRecordStore(db, log), nil
}

// NewRecordStore wraps an already migrated database.
func NewRecordStore(db *sql.DB, log *slog.Logger) *RecordStore {
	if log == nil {
		log = slog.Default()
	}
	return &RecordStore{
		db:     db,
		logger: log.With("component", "postgres_records"),
	}
}

// DB returns the underlying connection pool.
func (s *RecordStore) DB() *sql.DB {
	return s.db
}

// Close closes the connection pool.
func (s *RecordStore) Close() error {
	return s.db.Close()
}

// Load implements store.RecordStore.
func (s *RecordStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := store.ValidateKey(key); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data::text FROM records WHERE key = $1`, key).Scan(&data)
	if IsNotFoundError(err) {
		return nil, store.ErrRecordNotFound
	}
	if err != nil {
		return nil, store.LoadError(key, MapError(err))
	}
	return data, nil
}

// Save implements store.RecordStore. Data that PostgreSQL rejects as JSON is
// reported as store.ErrCorruptRecord inside the save error.
func (s *RecordStore) Save(ctx context.Context, key string, data []byte) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO records (key, data, updated_at) VALUES ($1, $2::jsonb, now())
			ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
			key, string(data))
		return err
	})
	if err != nil {
		s.logger.Debug("record save failed", "key", key)
		return store.SaveError(key, MapError(err))
	}
	return nil
}
