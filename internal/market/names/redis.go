package names

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the hash holding symbol -> display name entries.
const DefaultRedisKey = "index:names"

// RedisDirectory resolves index names from a Redis hash.
type RedisDirectory struct {
	client *redis.Client
	key    string
}

// NewRedisDirectory creates a directory over a connected client. An empty
// key falls back to DefaultRedisKey.
func NewRedisDirectory(client *redis.Client, key string) *RedisDirectory {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisDirectory{client: client, key: key}
}

// Resolve returns the display name for symbol, or ErrNotFound.
func (d *RedisDirectory) Resolve(ctx context.Context, symbol string) (string, error) {
	name, err := d.client.HGet(ctx, d.key, symbol).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query index name: %w", err)
	}
	return name, nil
}
