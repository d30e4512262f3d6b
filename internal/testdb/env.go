package testdb

import "os"

// Environment variables consulted for the test database URL, in order.
const (
	EnvTestDBURL   = "MOMENTS_TEST_DB_URL"
	EnvDatabaseURL = "DATABASE_URL"
)

// DatabaseURLVars lists the variables GetTestDatabaseURL checks.
var DatabaseURLVars = []string{EnvTestDBURL, EnvDatabaseURL}

// IsCI reports whether the tests run in a CI environment.
func IsCI() bool {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// GetTestDatabaseURL returns the first non-empty database URL variable, or
// "" when none is set.
func GetTestDatabaseURL() string {
	for _, v := range DatabaseURLVars {
		if url := os.Getenv(v); url != "" {
			return url
		}
	}
	return ""
}
