package core

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// KVStore is the local key-value storage holding the session blob, the chosen theme and accounts.
type KVStore interface {
	// Get returns ErrKeyNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set inserts or replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op when key does not exist.
	Delete(ctx context.Context, key string) error
}
