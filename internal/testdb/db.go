package testdb

import (
	"strings"
	"testing"

	"github.com/phrazzld/moments-api/internal/platform/logger"
	"github.com/phrazzld/moments-api/internal/platform/postgres"
	"github.com/phrazzld/moments-api/internal/redact"
)

// OpenRecordStore opens and migrates the test database, closing it when the
// test ends. Without a configured URL the test is skipped, or failed in CI.
func OpenRecordStore(t *testing.T) *postgres.RecordStore {
	t.Helper()

	url := GetTestDatabaseURL()
	if url == "" {
		msg := "no test database configured; set one of " + strings.Join(DatabaseURLVars, ", ")
		if IsCI() {
			t.Fatal(msg)
		}
		t.Skip(msg)
	}

	log, _ := logger.NewTestLogger(t)
	s, err := postgres.Open(t.Context(), url, log)
	if err != nil {
		t.Fatalf("failed to open test database %s: %s", redact.String(url), redact.Error(err))
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})
	return s
}
