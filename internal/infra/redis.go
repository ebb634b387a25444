package infra

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis opens the client backing the expiry-threshold cache, the
// dashboard's expiry-alert snapshot, and the background job queue. Redis is
// optional for this service: an empty URL returns a nil client and the
// callers degrade — both caches fall through to Postgres and the worker pool
// is not started.
func NewRedis(redisURL string) (*redis.Client, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	// When a URL is configured the instance must actually be reachable;
	// failing at startup beats every request paying the retry cost.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
