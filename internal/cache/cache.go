// Package cache provides a byte-oriented key/value cache used to keep course
// reads off the primary store.
package cache

import (
	"context"
	"time"
)

// Cache is implemented by Redis in production and Memory in tests/local runs
type Cache interface {
	// Get returns the value and whether it was present
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// DeletePrefix removes every key starting with prefix
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}
