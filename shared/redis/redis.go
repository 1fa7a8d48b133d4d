package redis

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var ctx = context.Background()

// Client wraps the go-redis client with the handful of operations the
// services need.
type Client struct {
	client *redis.Client
}

// NewClient connects to the Redis instance named by REDIS_URL.
func NewClient() *Client {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}
	return &Client{client: redis.NewClient(&redis.Options{
		Addr: addr,
	})}
}

// Set stores a value under key with the given expiration.
func (c *Client) Set(key string, value interface{}, expiration time.Duration) error {
	return c.client.Set(ctx, key, value, expiration).Err()
}

// Get returns the string value stored under key.
func (c *Client) Get(key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

// Del removes the value stored under key.
func (c *Client) Del(key string) error {
	return c.client.Del(ctx, key).Err()
}
