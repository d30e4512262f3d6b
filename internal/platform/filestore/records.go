// Package filestore keeps each record as a JSON file in one directory.
// Writes go to a temporary file that is renamed over the target, so a
// crash mid-write leaves the previous record intact.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/phrazzld/moments-api/internal/store"
)

const fileExt = ".json"

// RecordStore stores records as <dir>/<key>.json.
type RecordStore struct {
	dir string
	mu  sync.Mutex
}

var _ store.RecordStore = (*RecordStore)(nil)

// New creates the directory if needed and returns a RecordStore rooted there.
func New(dir string) (*RecordStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &RecordStore{dir: dir}, nil
}

// Dir returns the directory holding the record files.
func (s *RecordStore) Dir() string {
	return s.dir
}

func (s *RecordStore) path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

// Load implements store.RecordStore. An empty file counts as absent.
func (s *RecordStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := store.ValidateKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, store.LoadError(key, err)
	}

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, store.ErrRecordNotFound
	}
	if err != nil {
		return nil, store.LoadError(key, err)
	}
	if len(data) == 0 {
		return nil, store.ErrRecordNotFound
	}
	return data, nil
}

// Save implements store.RecordStore.
func (s *RecordStore) Save(ctx context.Context, key string, data []byte) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return store.SaveError(key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeAtomic(s.dir, s.path(key), data); err != nil {
		return store.SaveError(key, err)
	}
	return nil
}

func writeAtomic(dir, target string, data []byte) (err error) {
	tmp, err := os.CreateTemp(dir, filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
