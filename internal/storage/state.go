package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/dashd/internal/model"
)

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendRedis  Backend = "redis"
)

type OpenOptions struct {
	Backend  Backend
	Path     string
	RedisURL string
}

// Open returns the KV backend named by opts.
func Open(opts OpenOptions) (KV, error) {
	switch Backend(strings.ToLower(string(opts.Backend))) {
	case BackendSQLite, "":
		store, err := OpenSQLite(opts.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendFile:
		store, err := NewFileStore(opts.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendRedis:
		store, err := NewRedisStore(opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", opts.Backend)
	}
}

// LoadCollapseState reads the persisted map. A missing or unreadable value
// yields an empty map; the error is returned only so callers can log it.
func LoadCollapseState(ctx context.Context, kv KV) (model.CollapseState, error) {
	out := make(model.CollapseState)
	raw, err := kv.Get(ctx, KeyCollapseState)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return out, nil
		}
		return out, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return out, nil
	}
	var decoded map[string]bool
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return out, fmt.Errorf("decode collapse state: %w", err)
	}
	for title, open := range decoded {
		out[title] = open
	}
	return out, nil
}

// SaveCollapseState writes state unless it is empty.
func SaveCollapseState(ctx context.Context, kv KV, state model.CollapseState) error {
	if len(state) == 0 {
		return nil
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return kv.Put(ctx, KeyCollapseState, payload)
}

func LoadTheme(ctx context.Context, kv KV) model.Theme {
	raw, err := kv.Get(ctx, KeyTheme)
	if err != nil {
		return model.ThemeSystem
	}
	return model.ParseTheme(string(raw))
}

func SaveTheme(ctx context.Context, kv KV, theme model.Theme) error {
	return kv.Put(ctx, KeyTheme, []byte(theme))
}

// LoadUserID returns the last user id seen, or "" when none was stored.
func LoadUserID(ctx context.Context, kv KV) string {
	raw, err := kv.Get(ctx, KeyUserID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func SaveUserID(ctx context.Context, kv KV, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil
	}
	return kv.Put(ctx, KeyUserID, []byte(userID))
}
