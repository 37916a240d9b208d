package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func setupSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "dashd-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteGetMissingKey(t *testing.T) {
	store := setupSQLite(t)
	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLitePutOverwrites(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()
	if err := store.Put(ctx, KeyTheme, []byte("dark")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, KeyTheme, []byte("light")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := store.Get(ctx, KeyTheme)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "light" {
		t.Fatalf("expected light, got %q", got)
	}
}

func TestNewSQLiteStoreRejectsNilDB(t *testing.T) {
	if _, err := NewSQLiteStore(nil); err == nil {
		t.Fatal("expected error for nil db")
	}
}
