package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/moments-api/internal/store"
)

// PostgreSQL error codes
const (
	// invalidTextRepresentationCode is raised when data is not valid JSON for a JSONB column.
	invalidTextRepresentationCode = "22P02"

	// invalidJSONTextCode is raised by the JSON parser for malformed input.
	invalidJSONTextCode = "22032"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"

	// undefinedTableCode is raised when the records table has not been migrated.
	undefinedTableCode = "42P01"
)

// MapError maps a database error to the store error taxonomy while keeping
// the original error in the chain.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case invalidTextRepresentationCode, invalidJSONTextCode:
			return fmt.Errorf("%w: record is not valid JSON: %w", store.ErrCorruptRecord, err)
		case notNullViolationCode:
			return fmt.Errorf("%w: not null violation (%s): %w", store.ErrCorruptRecord, pgErr.ColumnName, err)
		case undefinedTableCode:
			return fmt.Errorf("records table missing, migrations not applied: %w", err)
		}
	}

	return err
}

// IsNotFoundError checks if the given error represents a "not found" scenario.
func IsNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, store.ErrRecordNotFound)
}
