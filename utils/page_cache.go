package utils

import (
	"context"
	"fmt"
	"os"

	"github.com/go-redis/redis/v8"
)

// PageCache is a whole-response cache for expensive listing pages, backed by
// redis. Entries are keyed by route path, raw query string and viewer, and
// never expire on their own: write-path handlers invalidate the affected
// prefix explicitly, and operators can clear out of band after direct data
// surgery.
type PageCache struct {
	inner  *redis.Client
	prefix string
}

const defaultPagePrefix = "pagecache:"

var ctx = context.Background()

func GetPageCache() *PageCache {
	return GetPageCacheWithPrefix(defaultPagePrefix)
}

// GetPageCacheWithPrefix builds a cache whose keys all share the given
// prefix. Tests use a random prefix so concurrent runs never see each
// other's pages.
func GetPageCacheWithPrefix(prefix string) *PageCache {
	return &PageCache{
		inner: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
			Password: os.Getenv("REDIS_PASSWD"),
			DB:       0, // use default DB
		}),
		prefix: prefix,
	}
}

// CacheKey derives the deterministic cache key for a request. Query string is
// part of the key so that every page of a listing caches separately, and the
// viewer id is part of the key because the rendered chrome differs between a
// signed-in user and an anonymous visitor. Anonymous requests share one entry.
func (c *PageCache) CacheKey(path string, rawQuery string, viewer string) string {
	key := c.prefix + path
	if rawQuery != "" {
		key += "?" + rawQuery
	}
	if viewer != "" {
		key += "@" + viewer
	}
	return key
}

// Get returns the cached body for key, or ok=false on miss or redis error. A
// broken cache must degrade to recomputing the page, never to a user-facing
// failure.
func (c *PageCache) Get(key string) (body string, ok bool) {
	body, err := c.inner.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return body, true
}

// Set stores the rendered body under key. Errors are swallowed for the same
// reason as in Get.
func (c *PageCache) Set(key string, body string) {
	c.inner.Set(ctx, key, body, 0)
}

// InvalidatePath drops every cached page of the given route path, regardless
// of query string.
func (c *PageCache) InvalidatePath(path string) error {
	keys, err := c.inner.Keys(ctx, c.prefix+path+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.inner.Del(ctx, keys...).Err()
}

// Clear drops the entire page cache. Exposed to operators for out-of-band
// invalidation.
func (c *PageCache) Clear() error {
	keys, err := c.inner.Keys(ctx, c.prefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.inner.Del(ctx, keys...).Err()
}
