package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Cache search results: search:{city}:{query}:{cuisines}:{sort}:{page}
	keySearch = "search:%s:%s:%s:%s:%d"
)

var ttlSearch = 5 * time.Minute

// SearchCache is a cache-aside layer over restaurant search responses. A nil
// *SearchCache is valid and always misses, so the cache stays optional.
type SearchCache struct {
	rdb *redis.Client
}

func NewSearchCache(addr string) *SearchCache {
	if addr == "" {
		return nil
	}
	return &SearchCache{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

// SearchKey derives the cache key for a search request.
func SearchKey(params SearchParams) string {
	return fmt.Sprintf(keySearch,
		strings.ToLower(params.City),
		strings.ToLower(params.SearchQuery),
		strings.ToLower(strings.Join(params.SelectedCuisines, ",")),
		params.SortOption,
		params.Page,
	)
}

// Get returns the cached response body for key, if any.
func (c *SearchCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// Set stores a response body under key. Failures are ignored; the cache is
// best effort.
func (c *SearchCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil {
		return
	}
	c.rdb.Set(ctx, key, payload, ttlSearch)
}
