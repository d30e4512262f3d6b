package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/moments-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, MapError(nil))
	assert.ErrorIs(t, MapError(sql.ErrNoRows), store.ErrRecordNotFound)

	badJSON := &pgconn.PgError{Code: invalidTextRepresentationCode, Message: "invalid input syntax for type json"}
	mapped := MapError(badJSON)
	assert.ErrorIs(t, mapped, store.ErrCorruptRecord)
	var pgErr *pgconn.PgError
	assert.ErrorAs(t, mapped, &pgErr)

	notNull := &pgconn.PgError{Code: notNullViolationCode, ColumnName: "data"}
	assert.ErrorIs(t, MapError(notNull), store.ErrCorruptRecord)

	missing := &pgconn.PgError{Code: undefinedTableCode}
	assert.Contains(t, MapError(missing).Error(), "migrations not applied")

	other := errors.New("connection reset")
	assert.Same(t, other, MapError(other))
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFoundError(sql.ErrNoRows))
	assert.True(t, IsNotFoundError(store.ErrRecordNotFound))
	assert.False(t, IsNotFoundError(errors.New("boom")))
}
