package db

import (
	"os"
	"testing"
)

// Connection and schema init need a live Postgres; this stays an
// opt-in integration test driven by DATABASE_URL.
func TestConnectPostgres(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	pool := ConnectPostgres()
	defer pool.Close()

	// initSchema is idempotent: a second run against the same
	// database must not fail.
	if err := initSchema(pool); err != nil {
		t.Fatalf("schema init should be idempotent: %v", err)
	}
}
