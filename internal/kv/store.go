// Package kv provides a keyed persistence abstraction for caches, bookmarks,
// and user preferences. Implementations must be safe for concurrent use.
package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned when a key does not exist in the store.
var ErrKeyNotFound = errors.New("key not found")

// Store defines the interface for keyed persistence.
//
// Values are opaque byte slices; callers own serialization. Consumers that
// must never block the primary data flow (cache, bookmarks, alert settings)
// are expected to log and continue when a Store operation fails.
type Store interface {
	// Get retrieves the value for a key. Returns ErrKeyNotFound on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under a key, overwriting any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// ListKeys returns all keys with the given prefix.
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}
