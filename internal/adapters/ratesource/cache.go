package ratesource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/forexdesk/internal/core/ports"
	"github.com/SscSPs/forexdesk/internal/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// Cache stores official rates for a bounded time.
type Cache interface {
	Get(ctx context.Context, key string) (decimal.Decimal, bool, error)
	Set(ctx context.Context, key string, rate decimal.Decimal, ttl time.Duration) error
}

type memoryEntry struct {
	rate    decimal.Decimal
	expires time.Time
}

// MemoryCache is a process-local Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]memoryEntry{}, now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) (decimal.Decimal, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || !c.now().Before(e.expires) {
		return decimal.Zero, false, nil
	}
	return e.rate, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, rate decimal.Decimal, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{rate: rate, expires: c.now().Add(ttl)}
	return nil
}

// RedisCache shares rates between instances.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, prefix: "forexdesk:rate:"}
}

// NewRedisClient parses url and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("ratesource: parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ratesource: ping: %w", err)
	}
	return client, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("ratesource: corrupt cached rate %q: %w", raw, err)
	}
	return rate, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, rate decimal.Decimal, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, rate.String(), ttl).Err()
}

// LookupRecorder counts rate lookups by source and result.
type LookupRecorder interface {
	RateLookup(source, result string)
}

type discardRecorder struct{}

func (discardRecorder) RateLookup(string, string) {}

// CachingProvider serves rates from a Cache and collapses concurrent misses for the same pair
// into one upstream call.
type CachingProvider struct {
	next     ports.RateProvider
	cache    Cache
	ttl      time.Duration
	group    singleflight.Group
	recorder LookupRecorder
}

// NewCachingProvider decorates next. recorder may be nil.
func NewCachingProvider(next ports.RateProvider, cache Cache, ttl time.Duration, recorder LookupRecorder) *CachingProvider {
	if recorder == nil {
		recorder = discardRecorder{}
	}
	return &CachingProvider{next: next, cache: cache, ttl: ttl, recorder: recorder}
}

var _ ports.RateProvider = (*CachingProvider)(nil)

func (p *CachingProvider) LookupRate(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	key := base + "/" + quote
	logger := middleware.GetLoggerFromCtx(ctx)

	rate, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		// A broken cache must not block pricing.
		logger.Warn("Rate cache read failed", slog.String("pair", key), slog.String("error", err.Error()))
	}
	if ok {
		p.recorder.RateLookup("cache", "hit")
		return rate, nil
	}

	ch := p.group.DoChan(key, func() (any, error) {
		rate, err := p.next.LookupRate(context.WithoutCancel(ctx), base, quote)
		if err != nil {
			p.recorder.RateLookup("upstream", "error")
			return nil, err
		}
		p.recorder.RateLookup("upstream", "ok")
		if err := p.cache.Set(context.WithoutCancel(ctx), key, rate, p.ttl); err != nil {
			logger.Warn("Rate cache write failed", slog.String("pair", key), slog.String("error", err.Error()))
		}
		return rate, nil
	})

	select {
	case <-ctx.Done():
		return decimal.Zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return decimal.Zero, res.Err
		}
		return res.Val.(decimal.Decimal), nil
	}
}

// NewProvider assembles the production chain: cache, then breaker, then client. A zero ttl
// disables caching.
func NewProvider(client ports.RateProvider, cache Cache, ttl time.Duration, recorder LookupRecorder) ports.RateProvider {
	guarded := NewBreaker(client, DefaultBreakerConfig())
	if ttl <= 0 || cache == nil {
		return guarded
	}
	return NewCachingProvider(guarded, cache, ttl, recorder)
}
