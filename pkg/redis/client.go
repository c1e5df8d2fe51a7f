package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

var client *redis.Client

// Init connects the package-level client. The idempotency layer is the
// only consumer, so a dead Redis is a boot failure rather than a
// degraded mode.
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}

	if password != "" {
		opts.Password = password
	}

	client = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	return client.Ping(ctx).Err()
}

// SetClient swaps the package-level client, used by tests to point at
// miniredis.
func SetClient(c *redis.Client) {
	client = c
}

// Set stores a value under key for the given retention window
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return client.Set(ctx, key, value, expiration).Err()
}

// Get returns the string value under key; a miss surfaces as redis.Nil
func Get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

// Del removes a key
func Del(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}

// SetNX stores the value only when the key is absent, reporting whether
// the write won
func SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return client.SetNX(ctx, key, value, expiration).Result()
}
