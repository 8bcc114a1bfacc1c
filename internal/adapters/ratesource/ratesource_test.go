package ratesource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_LookupRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "EUR", r.URL.Query().Get("base"))
		assert.Equal(t, "USD", r.URL.Query().Get("symbols"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"amount":1.0,"base":"EUR","date":"2026-10-15","rates":{"USD":1.1023}}`))
	}))
	defer srv.Close()

	rate, err := NewClient(srv.URL, time.Second).LookupRate(context.Background(), "EUR", "USD")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.1023").Equal(rate))
}

func TestClient_UnsupportedPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"amount":1.0,"base":"EUR","rates":{}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).LookupRate(context.Background(), "EUR", "XXX")
	assert.ErrorIs(t, err, ErrUnsupportedPair)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).LookupRate(context.Background(), "EUR", "USD")
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.NotErrorIs(t, err, ErrUnsupportedPair)
}

type stubProvider struct {
	calls atomic.Int32
	rate  decimal.Decimal
	err   error
	delay time.Duration
}

func (s *stubProvider) LookupRate(context.Context, string, string) (decimal.Decimal, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.rate, s.err
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *countingRecorder) RateLookup(source, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = map[string]int{}
	}
	r.counts[source+"/"+result]++
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	upstream := &stubProvider{err: errors.New("connection refused")}
	b := NewBreaker(upstream, BreakerConfig{ConsecutiveFailures: 2, OpenTimeout: time.Minute, HalfOpenRequests: 1})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := b.LookupRate(ctx, "EUR", "USD")
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	_, err := b.LookupRate(ctx, "EUR", "USD")
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Equal(t, int32(2), upstream.calls.Load(), "open breaker must not call upstream")
}

func TestBreaker_UnsupportedPairDoesNotTrip(t *testing.T) {
	upstream := &stubProvider{err: ErrUnsupportedPair}
	b := NewBreaker(upstream, BreakerConfig{ConsecutiveFailures: 1, OpenTimeout: time.Minute, HalfOpenRequests: 1})

	for i := 0; i < 3; i++ {
		_, err := b.LookupRate(context.Background(), "EUR", "XXX")
		assert.ErrorIs(t, err, ErrUnsupportedPair)
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestCachingProvider_MemoryCacheHit(t *testing.T) {
	upstream := &stubProvider{rate: decimal.RequireFromString("1.10")}
	rec := &countingRecorder{}
	p := NewCachingProvider(upstream, NewMemoryCache(), time.Minute, rec)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rate, err := p.LookupRate(ctx, "EUR", "USD")
		require.NoError(t, err)
		assert.True(t, upstream.rate.Equal(rate))
	}
	assert.Equal(t, int32(1), upstream.calls.Load())
	assert.Equal(t, 1, rec.counts["upstream/ok"])
	assert.Equal(t, 2, rec.counts["cache/hit"])
}

func TestCachingProvider_ExpiredEntryRefetched(t *testing.T) {
	upstream := &stubProvider{rate: decimal.RequireFromString("1.10")}
	cache := NewMemoryCache()
	now := time.Now()
	cache.now = func() time.Time { return now }
	p := NewCachingProvider(upstream, cache, time.Minute, nil)
	ctx := context.Background()

	_, err := p.LookupRate(ctx, "EUR", "USD")
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)
	_, err = p.LookupRate(ctx, "EUR", "USD")
	require.NoError(t, err)
	assert.Equal(t, int32(2), upstream.calls.Load())
}

func TestCachingProvider_CollapsesConcurrentMisses(t *testing.T) {
	upstream := &stubProvider{rate: decimal.RequireFromString("1.10"), delay: 50 * time.Millisecond}
	p := NewCachingProvider(upstream, NewMemoryCache(), time.Minute, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.LookupRate(context.Background(), "EUR", "USD")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), upstream.calls.Load())
}

func TestCachingProvider_ErrorsAreNotCached(t *testing.T) {
	upstream := &stubProvider{err: apperrors.ErrUpstream}
	p := NewCachingProvider(upstream, NewMemoryCache(), time.Minute, nil)

	for i := 0; i < 2; i++ {
		_, err := p.LookupRate(context.Background(), "EUR", "USD")
		assert.ErrorIs(t, err, apperrors.ErrUpstream)
	}
	assert.Equal(t, int32(2), upstream.calls.Load())
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	cache := NewRedisCache(client)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "EUR/USD")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "EUR/USD", decimal.RequireFromString("1.1023"), time.Minute))
	rate, ok, err := cache.Get(ctx, "EUR/USD")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, decimal.RequireFromString("1.1023").Equal(rate))

	mr.FastForward(2 * time.Minute)
	_, ok, err = cache.Get(ctx, "EUR/USD")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	upstream := &stubProvider{rate: decimal.RequireFromString("0.85")}
	p := NewProvider(upstream, NewRedisCache(client), time.Minute, nil)
	_, err = p.LookupRate(context.Background(), "EUR", "GBP")
	require.NoError(t, err)
	assert.True(t, mr.Exists("forexdesk:rate:EUR/GBP"))
}
