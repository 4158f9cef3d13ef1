// Package storage is the device-local key/value store the client persists its
// session record in.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written or was deleted.
var ErrNotFound = errors.New("storage: key not found")

// KV is a small transactional key/value store. Put replaces the whole value
// atomically; readers never observe a partially written record.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
