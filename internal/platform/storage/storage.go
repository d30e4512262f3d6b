// Package storage opens the record store backend named in the configuration.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/moments-api/internal/config"
	"github.com/phrazzld/moments-api/internal/platform/filestore"
	"github.com/phrazzld/moments-api/internal/platform/memory"
	"github.com/phrazzld/moments-api/internal/platform/postgres"
	"github.com/phrazzld/moments-api/internal/platform/sqlite"
	"github.com/phrazzld/moments-api/internal/store"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the record store selected by cfg.Driver. The closer releases
// the backend's resources and is never nil on success.
func Open(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (store.RecordStore, io.Closer, error) {
	if log == nil {
		log = slog.Default()
	}

	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewRecordStore(), nopCloser{}, nil

	case config.DriverFile:
		fs, err := filestore.New(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open file store: %w", err)
		}
		log.Debug("file store opened", "dir", fs.Dir())
		return fs, nopCloser{}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Path, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		log.Debug("sqlite store opened", "path", cfg.Path)
		return db, db, nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.URL, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return db, db, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
