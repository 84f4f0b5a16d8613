// Package cache stores JSON-encoded read models with a TTL.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache is a JSON value cache.
type Cache interface {
	// Get decodes the value at key into dest, or returns ErrMiss.
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CategoriesKey caches the full category list.
const CategoriesKey = "categories:all"

// FilterOptionsKey caches the extension filter chips of a user.
func FilterOptionsKey(userID string) string {
	return "filter-options:" + userID
}
