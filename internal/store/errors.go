package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all record store implementations.
var (
	// ErrRecordNotFound is returned by RecordStore.Load when nothing has been
	// saved under the key yet.
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidKey is returned when a key is empty or contains characters a
	// backend cannot store.
	ErrInvalidKey = errors.New("invalid record key")

	// ErrLoadFailed is returned when a backend could not read a record.
	ErrLoadFailed = errors.New("load failed")

	// ErrSaveFailed is returned when a backend could not write a record.
	ErrSaveFailed = errors.New("save failed")

	// ErrCorruptRecord is returned when a stored record cannot be decoded or
	// violates the domain invariants.
	ErrCorruptRecord = errors.New("corrupt record")
)

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Key       string // The record key (e.g., "moments")
	Operation string // The operation that failed (e.g., "load", "save")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s of %s failed: %s: %v", e.Operation, e.Key, e.Message, e.Err)
	}
	return fmt.Sprintf("%s of %s failed: %s", e.Operation, e.Key, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given key, operation,
// message, and wrapped error.
func NewStoreError(key, operation, message string, err error) *StoreError {
	return &StoreError{
		Key:       key,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// SaveError wraps a backend write failure so that it matches ErrSaveFailed
// while keeping the backend's own error reachable.
func SaveError(key string, err error) error {
	return NewStoreError(key, "save", "backend write failed", wrapSentinel(ErrSaveFailed, err))
}

// LoadError wraps a backend read failure so that it matches ErrLoadFailed.
func LoadError(key string, err error) error {
	return NewStoreError(key, "load", "backend read failed", wrapSentinel(ErrLoadFailed, err))
}

func wrapSentinel(sentinel, err error) error {
	if err == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
