package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Client wraps redis.Client. Reads fail safe: an unreachable Redis behaves
// like an empty cache instead of failing the request. Writes report errors.
type Client struct {
	client *redis.Client
}

// New creates a new Redis-backed client. No connection is made until first use.
func New(addr, password string, db int) *Client {
	return &Client{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Ping checks connectivity; used at startup to warn about a degraded cache.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("cache disabled")
	}
	return c.client.Ping(ctx).Err()
}

// Get returns the value or nil when missing or when redis is unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("cache get failed, treating as miss")
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL; a zero TTL keeps the key until deleted.
// Failures are logged and returned; pure caching callers may ignore them.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		return err
	}
	return nil
}

// Delete removes a key. Failures are logged and returned.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache delete failed")
		return err
	}
	return nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
