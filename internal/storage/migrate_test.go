package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openRawDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateRoundTrip(t *testing.T) {
	db := openRawDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	got, err := AppliedMigrations(db)
	if err != nil {
		t.Fatalf("applied migrations: %v", err)
	}
	if diff := cmp.Diff([]string{"0001_kv"}, got); diff != "" {
		t.Fatalf("unexpected applied versions (-want +got):\n%s", diff)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	got, err = AppliedMigrations(db)
	if err != nil {
		t.Fatalf("applied migrations: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no applied versions after down, got %v", got)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Put(context.Background(), "roundtrip", []byte("ok")); err != nil {
		t.Fatalf("put after roundtrip failed: %v", err)
	}
	value, err := store.Get(context.Background(), "roundtrip")
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if string(value) != "ok" {
		t.Fatalf("unexpected value after roundtrip: %q", value)
	}
}

func TestMigrateUpIsIdempotentAndKeepsData(t *testing.T) {
	db := openRawDB(t)
	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Put(context.Background(), KeyTheme, []byte("dark")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("repeated migrate up: %v", err)
	}
	value, err := store.Get(context.Background(), KeyTheme)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(value) != "dark" {
		t.Fatalf("data lost across repeated migrate: %q", value)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	if _, err := store.Get(context.Background(), KeyTheme); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected missing table error after down, got %v", err)
	}
}
