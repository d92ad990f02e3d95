package cache

import (
	"context"
	"time"
)

// Cache interface định nghĩa contract cho cache layer
// Cho phép swap implementation (Redis, in-memory)
type Cache interface {
	// Get loads the value stored under key into dest.
	// found = false on a miss or an expired entry; dest is left untouched then.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key for ttl. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache
	Delete(ctx context.Context, keys ...string) error

	// Ping checks that the backend is reachable
	Ping(ctx context.Context) error
}
