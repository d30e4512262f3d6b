// Package postgres provides a PostgreSQL record store on the pgx stdlib
// driver. Records are stored as JSONB in a single keyed table whose schema is
// managed by embedded goose migrations.
package postgres
