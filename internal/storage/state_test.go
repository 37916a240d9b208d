package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sandeepkv93/dashd/internal/model"
)

func TestCollapseStateAcrossBackends(t *testing.T) {
	redisStore, _ := setupRedis(t)
	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	backends := map[string]KV{
		"sqlite": setupSQLite(t),
		"file":   fileStore,
		"redis":  redisStore,
	}
	for name, kv := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			empty, err := LoadCollapseState(ctx, kv)
			if err != nil || len(empty) != 0 {
				t.Fatalf("expected empty state, got %#v err=%v", empty, err)
			}
			want := model.CollapseState{"A": true, "B": false}
			if err := SaveCollapseState(ctx, kv, want); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := LoadCollapseState(ctx, kv)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("unexpected state (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadCollapseStateCorruptValue(t *testing.T) {
	kv := setupSQLite(t)
	ctx := context.Background()
	if err := kv.Put(ctx, KeyCollapseState, []byte("[broken")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := LoadCollapseState(ctx, kv)
	if err == nil {
		t.Fatal("expected decode error to be reported")
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty usable map, got %#v", got)
	}
}

func TestSaveCollapseStateSkipsEmpty(t *testing.T) {
	kv := setupSQLite(t)
	ctx := context.Background()
	if err := SaveCollapseState(ctx, kv, model.CollapseState{"A": true}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := SaveCollapseState(ctx, kv, model.CollapseState{}); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	got, _ := LoadCollapseState(ctx, kv)
	if !got["A"] {
		t.Fatalf("empty save should not clobber previous state, got %#v", got)
	}
}

func TestThemeAndUserIDPersistence(t *testing.T) {
	kv := setupSQLite(t)
	ctx := context.Background()
	if LoadTheme(ctx, kv) != model.ThemeSystem {
		t.Fatal("expected system theme by default")
	}
	if err := SaveTheme(ctx, kv, model.ThemeDark); err != nil {
		t.Fatalf("save theme: %v", err)
	}
	if LoadTheme(ctx, kv) != model.ThemeDark {
		t.Fatal("expected dark theme after save")
	}
	if LoadUserID(ctx, kv) != "" {
		t.Fatal("expected no user id by default")
	}
	if err := SaveUserID(ctx, kv, " user-7 "); err != nil {
		t.Fatalf("save user id: %v", err)
	}
	if LoadUserID(ctx, kv) != "user-7" {
		t.Fatalf("unexpected user id %q", LoadUserID(ctx, kv))
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(OpenOptions{Backend: "etcd"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestOpenFileBackend(t *testing.T) {
	kv, err := Open(OpenOptions{Backend: BackendFile, Path: filepath.Join(t.TempDir(), "s.json")})
	if err != nil {
		t.Fatalf("open file backend: %v", err)
	}
	defer kv.Close()
	if _, ok := kv.(*FileStore); !ok {
		t.Fatalf("expected *FileStore, got %T", kv)
	}
}
