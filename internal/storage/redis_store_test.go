package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func setupRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	store, err := NewRedisStore("redis://" + s.Addr())
	if err != nil {
		t.Fatalf("failed to create redis store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, s
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, s := setupRedis(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, KeyCollapseState); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Put(ctx, KeyCollapseState, []byte(`{"A":true}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	raw, err := s.Get("dashd:" + KeyCollapseState)
	if err != nil {
		t.Fatalf("expected prefixed key in redis: %v", err)
	}
	if raw != `{"A":true}` {
		t.Fatalf("unexpected raw value %q", raw)
	}
	got, err := store.Get(ctx, KeyCollapseState)
	if err != nil || string(got) != `{"A":true}` {
		t.Fatalf("unexpected get %q err=%v", got, err)
	}
}

func TestNewRedisStoreBadURL(t *testing.T) {
	if _, err := NewRedisStore("not-a-url"); err == nil {
		t.Fatal("expected parse error")
	}
}
