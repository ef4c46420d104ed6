// Package cache wraps the key/value backend that holds derived per-user views.
// The cache is an optimization only: every caller must be able to fall back to
// the content store when a cache call fails.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the backend contract: opaque JSON blobs with a TTL.
type Store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Get decodes the cached value into dest and reports whether the key was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Del(ctx context.Context, key string) error
}

type Redis struct {
	client *redis.Client
}

func ConnectRedis(ctx context.Context, addr, password string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, b, ttl).Err()
}

func (r *Redis) Get(ctx context.Context, key string, dest any) (bool, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
