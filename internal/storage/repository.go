package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Fixed keys shared by every backend.
const (
	KeyCollapseState = "dashboardCollapseState"
	KeyTheme         = "theme"
	KeyUserID        = "user_id"
)

// KV is a durable string-keyed byte store. Get returns ErrNotFound for an
// absent key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
