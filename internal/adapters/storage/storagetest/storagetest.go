// Package storagetest opens throwaway databases for store tests.
package storagetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"aiclub/internal/adapters/storage"
)

// Open returns a migrated database in a per-test temp directory.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "club.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("init test db: %v", err)
	}
	return db
}

// InsertUser writes a bare account row so foreign keys to account resolve.
func InsertUser(t testing.TB, db *sql.DB, id, name, email, role string) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO account (id, name, email, password_hash, role, created_at) VALUES (?, ?, ?, 'x', ?, ?)`,
		id, name, email, role, "2026-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("insert user %s: %v", id, err)
	}
}

// Count returns SELECT COUNT(*) FROM table WHERE where, for asserting side effects.
func Count(t testing.TB, db *sql.DB, table, where string, args ...any) int {
	t.Helper()
	q := "SELECT COUNT(*) FROM " + table
	if where != "" {
		q += " WHERE " + where
	}
	var n int
	if err := db.QueryRowContext(context.Background(), q, args...).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
