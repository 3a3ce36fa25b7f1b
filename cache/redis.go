package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultRedisPrefix namespaces every key menuval writes.
	DefaultRedisPrefix = "menuval:"
	// DefaultRedisTimeout bounds each Redis round trip.
	DefaultRedisTimeout = 2 * time.Second

	scanBatch = 200
)

// RedisCache is a Redis-backed translation cache shared between processes.
type RedisCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	timeout   time.Duration
}

// RedisConfig holds configuration for the Redis cache.
type RedisConfig struct {
	URL       string        // e.g. "redis://localhost:6379/0"
	TTL       time.Duration // 0 = no expiration
	KeyPrefix string        // default: DefaultRedisPrefix
	Timeout   time.Duration // per command (default: DefaultRedisTimeout)
}

// NewRedisCache connects to Redis and verifies the connection with a PING.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	c := NewRedisCacheFromClient(redis.NewClient(opts), cfg.TTL, cfg.KeyPrefix)
	if cfg.Timeout > 0 {
		c.timeout = cfg.Timeout
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.client.Ping(pingCtx).Err(); err != nil {
		_ = c.client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return c, nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration, keyPrefix string) *RedisCache {
	if keyPrefix == "" {
		keyPrefix = DefaultRedisPrefix
	}
	if ttl < 0 {
		ttl = 0
	}
	return &RedisCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
		timeout:   DefaultRedisTimeout,
	}
}

func (c *RedisCache) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}

// Get retrieves a value. Redis errors are reported as a miss.
func (c *RedisCache) Get(key string) (string, bool) {
	ctx, cancel := c.ctx()
	defer cancel()

	val, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores a value with the configured TTL.
func (c *RedisCache) Set(key string, value string) error {
	ctx, cancel := c.ctx()
	defer cancel()
	return c.client.Set(ctx, c.keyPrefix+key, value, c.ttl).Err()
}

// Entries scans every key under the prefix. Keys are returned without the prefix.
func (c *RedisCache) Entries() map[string]string {
	out, _ := c.EntriesContext(context.Background())
	return out
}

// EntriesContext is Entries with cancellation and error reporting.
func (c *RedisCache) EntriesContext(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string)
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.keyPrefix+"*", scanBatch).Result()
		if err != nil {
			return out, fmt.Errorf("scanning keys: %w", err)
		}
		if len(keys) > 0 {
			vals, err := c.client.MGet(ctx, keys...).Result()
			if err != nil {
				return out, fmt.Errorf("reading keys: %w", err)
			}
			for i, v := range vals {
				if s, ok := v.(string); ok {
					out[keys[i][len(c.keyPrefix):]] = s
				}
			}
		}
		if next == 0 {
			return out, nil
		}
		cursor = next
	}
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping tests the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

var _ EnumerableCache = (*RedisCache)(nil)
