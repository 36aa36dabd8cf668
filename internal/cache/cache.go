// Package cache is a read-through cache that callers construct and pass around
// explicitly. There is no package-level instance.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Backend stores encoded values with a TTL
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Cache serializes values as JSON into a Backend
type Cache struct {
	backend Backend
	ttl     time.Duration
}

// New creates a cache with a default ttl for every entry
func New(backend Backend, ttl time.Duration) *Cache {
	return &Cache{backend: backend, ttl: ttl}
}

// Loader produces the value on a miss
type Loader func(ctx context.Context) (interface{}, error)

// GetOrLoad fills dest from the cache, or from load on a miss.
// Backend failures degrade to a miss; only loader and decode errors are returned.
func (c *Cache) GetOrLoad(ctx context.Context, key string, dest interface{}, load Loader) error {
	if data, found, err := c.backend.Get(ctx, key); err == nil && found {
		if err := json.Unmarshal(data, dest); err == nil {
			return nil
		}
	}

	value, err := load(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal %s: %w", key, err)
	}
	_ = c.backend.Set(ctx, key, data, c.ttl)

	return json.Unmarshal(data, dest)
}

// Invalidate drops every key; all are attempted even when one fails
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	var errs []error
	for _, key := range keys {
		if err := c.backend.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("cache delete %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}
