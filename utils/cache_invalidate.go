package utils

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// CacheInvalidator purges cached event responses after writes so the public
// listing never serves stale lifecycle state.
type CacheInvalidator struct{ rdb *redis.Client }

func NewCacheInvalidator(rdb *redis.Client) *CacheInvalidator {
	return &CacheInvalidator{rdb: rdb}
}

func (ci *CacheInvalidator) purge(ctx context.Context, pattern string) {
	iter := ci.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		_ = ci.rdb.Del(ctx, iter.Val()).Err()
	}
}

// PurgeEvents drops every cached events listing and item. Item keys hold a
// hash of the id, not the id itself, so the whole namespace goes.
func (ci *CacheInvalidator) PurgeEvents(ctx context.Context) {
	ci.purge(ctx, "cache:events:list:*")
	ci.purge(ctx, "cache:events:item:*")
}
