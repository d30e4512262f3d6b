// Package migrate applies embedded goose migrations for the SQL record stores.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

// gooseLogger adapts the goose logger interface to slog.
type gooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress messages at info level.
func (l *gooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf forwards goose failures at error level. It does not exit; the
// error is returned to the caller instead.
func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Up applies every pending migration found at the root of fsys and returns
// the number applied.
func Up(ctx context.Context, db *sql.DB, dialect database.Dialect, fsys fs.FS, log *slog.Logger) (int, error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "migrations", "dialect", string(dialect))

	provider, err := goose.NewProvider(dialect, db, fsys, goose.WithLogger(&gooseLogger{logger: log}))
	if err != nil {
		return 0, fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to apply migrations: %w", err)
	}

	for _, r := range results {
		log.Info("applied migration",
			"version", r.Source.Version,
			"duration_ms", r.Duration.Milliseconds())
	}
	return len(results), nil
}
