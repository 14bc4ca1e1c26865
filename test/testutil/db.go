package testutil

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/soujanya-006/intervuai/internal/repo"
)

func OpenTestDB(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "intervuai_test.db")
	conn, err := repo.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := repo.ApplyMigrations(conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return conn, func() {
		_ = conn.Close()
	}
}
