package client

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	if err != nil {
		t.Fatalf("tableExists query failed: %v", err)
	}
	return n > 0
}

func TestInitDatabase_CreatesKVStore(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "countries.db")

	db, err := InitDatabase(ctx, dsn)
	if err != nil {
		t.Fatalf("InitDatabase error: %v", err)
	}
	defer db.Close()

	if !tableExists(t, db, "goose_db_version") {
		t.Fatalf("expected goose_db_version table after migrations")
	}
	if !tableExists(t, db, "kvstore") {
		t.Fatalf("expected kvstore table after migrations")
	}
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "countries.db")

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("sql.Open error: %v", err)
	}
	defer db.Close()

	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("RunMigrations (first) error: %v", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("RunMigrations (second) should be idempotent, got: %v", err)
	}
}

func TestInitDatabase_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "countries.db")

	db, err := InitDatabase(ctx, dsn)
	if err != nil {
		t.Fatalf("InitDatabase error: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO kvstore(key, value) VALUES ('users', '[]')`); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	_ = db.Close()

	db, err = InitDatabase(ctx, dsn)
	if err != nil {
		t.Fatalf("InitDatabase (reopen) error: %v", err)
	}
	defer db.Close()

	var got string
	if err := db.QueryRowContext(ctx, `SELECT value FROM kvstore WHERE key='users'`).Scan(&got); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if got != "[]" {
		t.Fatalf("unexpected value: %q", got)
	}
}
