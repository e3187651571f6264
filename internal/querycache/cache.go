package querycache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 30 * time.Second

// Cache is the shared read-through query cache consulted by all list/detail
// reads. Concurrent reads of the same key share one in-flight load
// (singleflight); entries expire after the TTL; mutations drop entries through
// InvalidateFor so the next read refetches. Loader errors are returned to the
// caller and never cached.
type Cache struct {
	store *gocache.Cache
	group singleflight.Group
}

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{store: gocache.New(ttl, 2*ttl)}
}

// Fetch returns the cached value for key or runs loader to populate it.
// An entry of the wrong type is treated as a miss and evicted, never served
// as zero data.
func Fetch[T any](ctx context.Context, c *Cache, key Key, loader func(context.Context) (T, error)) (T, error) {
	k := key.String()
	if v, ok := c.store.Get(k); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
		c.store.Delete(k)
	}
	v, err, _ := c.group.Do(k, func() (interface{}, error) {
		if v, ok := c.store.Get(k); ok {
			if _, ok := v.(T); ok {
				return v, nil
			}
			c.store.Delete(k)
		}
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		c.store.Set(k, loaded, gocache.DefaultExpiration)
		return loaded, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		// A concurrent flight for the same key loaded a different type;
		// reload for this caller rather than handing back zero data.
		loaded, err := loader(ctx)
		if err != nil {
			var zero T
			return zero, err
		}
		c.store.Set(k, loaded, gocache.DefaultExpiration)
		return loaded, nil
	}
	return typed, nil
}

// InvalidateFor drops every cached key whose entity the invalidation table
// marks stale for the given mutation, across all scopes.
func (c *Cache) InvalidateFor(m Mutation) {
	for _, entity := range AffectedEntities(m) {
		c.InvalidateEntity(entity)
	}
}

// InvalidateEntity removes the unscoped key for entity and every scoped key
// under it.
func (c *Cache) InvalidateEntity(entity Entity) {
	prefix := string(entity) + ":"
	c.store.Delete(string(entity))
	for k := range c.store.Items() {
		if strings.HasPrefix(k, prefix) {
			c.store.Delete(k)
		}
	}
}

// Contains reports whether key currently holds a fresh entry.
func (c *Cache) Contains(key Key) bool {
	_, ok := c.store.Get(key.String())
	return ok
}

// Flush empties the cache.
func (c *Cache) Flush() {
	c.store.Flush()
}
