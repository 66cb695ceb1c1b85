package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/alexivanou/places-api/internal/config"
	"github.com/alexivanou/places-api/internal/metrics"
	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	keyPrefix   = "places:"
	breakerName = "redis-cache"
	// consecutive Redis failures before reads and writes bypass the cache
	tripAfter = 5
)

// QueryCache stores serialized query results keyed by query shape.
// A nil *QueryCache is valid and caches nothing.
type QueryCache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker[string]
}

// New creates a cache backed by client
func New(client *redis.Client, ttl time.Duration) *QueryCache {
	if client == nil {
		return nil
	}
	return &QueryCache{client: client, ttl: ttl, breaker: newBreaker(time.Minute)}
}

func newBreaker(timeout time.Duration) *gobreaker.CircuitBreaker[string] {
	return gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfter
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CacheBreakerTransitions.WithLabelValues(from.String(), to.String()).Inc()
		},
	})
}

// rejected reports whether err came from the open breaker rather than Redis
func rejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// Open connects to Redis when the config enables caching.
// It returns nil when no address is configured.
func Open(ctx context.Context, cfg config.CacheConfig) (*QueryCache, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return New(client, cfg.TTL), nil
}

// Get decodes the cached value for key into dest.
// It reports false on a miss.
func (c *QueryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c == nil {
		return false, nil
	}
	s, err := c.breaker.Execute(func() (string, error) {
		return c.client.Get(ctx, keyPrefix+key).Result()
	})
	if err != nil {
		if errors.Is(err, redis.Nil) || rejected(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value under key for the configured TTL
func (c *QueryCache) Set(ctx context.Context, key string, value interface{}) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = c.breaker.Execute(func() (string, error) {
		return "", c.client.Set(ctx, keyPrefix+key, b, c.ttl).Err()
	})
	if rejected(err) {
		return nil
	}
	return err
}

// Invalidate drops every cached query result.
// It always reaches Redis, even while the breaker is open.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Close releases the Redis connection
func (c *QueryCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// ListKey is the cache key of a place listing
func ListKey(country, tag string, limit, offset int) string {
	v := url.Values{}
	v.Set("country", country)
	v.Set("tag", tag)
	v.Set("limit", fmt.Sprint(limit))
	v.Set("offset", fmt.Sprint(offset))
	return "list:" + v.Encode()
}

// PlaceKey is the cache key of a single place
func PlaceKey(code string) string {
	return "code:" + url.QueryEscape(code)
}
