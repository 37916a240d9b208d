package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Get(ctx, KeyUserID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first write, got %v", err)
	}
	if err := store.Put(ctx, KeyUserID, []byte("user-1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, KeyTheme, []byte("dark")); err != nil {
		t.Fatalf("put theme: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.Get(ctx, KeyUserID)
	if err != nil || string(got) != "user-1" {
		t.Fatalf("unexpected user id %q err=%v", got, err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()
	if _, err := store.Get(ctx, KeyTheme); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
	if err := store.Put(ctx, KeyTheme, []byte("light")); err != nil {
		t.Fatalf("put over corrupt file: %v", err)
	}
	got, err := store.Get(ctx, KeyTheme)
	if err != nil || string(got) != "light" {
		t.Fatalf("unexpected theme %q err=%v", got, err)
	}
}

func TestNewFileStoreRequiresPath(t *testing.T) {
	if _, err := NewFileStore("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}
