package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisStore implements Store with an INCR + EXPIRE-on-first-hit counter.
type redisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore returns a Store counting hits in Redis under the given key
// prefix.
func NewRedisStore(client redis.UniversalClient, prefix string) Store {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &redisStore{client: client, prefix: prefix}
}

func (s *redisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	fullKey := s.prefix + ":" + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, fullKey)
	// NX so only the first hit of a window sets the TTL; later hits keep the
	// original window end.
	pipe.ExpireNX(ctx, fullKey, window)
	ttl := pipe.TTL(ctx, fullKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, err
	}

	resetAt := time.Now().Add(ttl.Val())
	return incr.Val(), resetAt, nil
}
