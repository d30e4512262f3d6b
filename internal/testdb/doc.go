// Package testdb locates and prepares the PostgreSQL database used by the
// integration tests. Tests skip themselves when no database is configured,
// except in CI where a missing database is a failure.
package testdb
