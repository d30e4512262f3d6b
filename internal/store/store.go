package store

import (
	"context"
	"regexp"
)

// Record keys used by the Gateway.
const (
	KeyMoments  = "moments"
	KeySettings = "settings"
)

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,63}$`)

// RecordStore is a durable keyed store of opaque records. Save replaces the
// whole record; the last write wins.
type RecordStore interface {
	// Load returns the record saved under key, or ErrRecordNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the record under key.
	Save(ctx context.Context, key string, data []byte) error
}

// ValidateKey checks that key is safe to use as a file name or column value.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return NewStoreError(key, "validate", "key must match "+keyPattern.String(), ErrInvalidKey)
	}
	return nil
}
