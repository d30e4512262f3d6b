// Package memory provides an in-process record store for tests and
// ephemeral runs. Nothing survives the process.
package memory

import (
	"context"
	"sync"

	"github.com/phrazzld/moments-api/internal/store"
)

// RecordStore keeps records in a map guarded by a mutex.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string][]byte

	// FailSave, when set, is returned by every Save. Tests use it to
	// exercise write failures.
	FailSave error
}

var _ store.RecordStore = (*RecordStore)(nil)

// NewRecordStore creates an empty RecordStore.
func NewRecordStore() *RecordStore {
	return &RecordStore{records: make(map[string][]byte)}
}

// Load implements store.RecordStore.
func (s *RecordStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := store.ValidateKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, store.LoadError(key, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.records[key]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	return append([]byte(nil), data...), nil
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
	if s.FailSave != nil {
		return store.SaveError(key, s.FailSave)
	}
	s.records[key] = append([]byte(nil), data...)
	return nil
}

// Put stores raw bytes under key without validation. Tests use it to plant
// corrupt records.
func (s *RecordStore) Put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = append([]byte(nil), data...)
}
