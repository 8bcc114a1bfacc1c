package ratesource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/ports"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
)

// BreakerConfig tunes the circuit breaker around the rate source.
type BreakerConfig struct {
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
	HalfOpenRequests    uint32
}

// DefaultBreakerConfig trips after five consecutive failures and retries after 30s.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{ConsecutiveFailures: 5, OpenTimeout: 30 * time.Second, HalfOpenRequests: 1}
}

// Breaker fails fast while the rate source is down. Calls are never retried.
type Breaker struct {
	next    ports.RateProvider
	breaker *gobreaker.CircuitBreaker
}

// NewBreaker wraps next with a circuit breaker.
func NewBreaker(next ports.RateProvider, cfg BreakerConfig) *Breaker {
	settings := gobreaker.Settings{
		Name:        "rate-source",
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		// An unknown pair is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrUnsupportedPair) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}
	return &Breaker{next: next, breaker: gobreaker.NewCircuitBreaker(settings)}
}

var _ ports.RateProvider = (*Breaker)(nil)

func (b *Breaker) LookupRate(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	res, err := b.breaker.Execute(func() (any, error) {
		return b.next.LookupRate(ctx, base, quote)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return decimal.Zero, fmt.Errorf("%w: rate source unavailable (%v)", apperrors.ErrUpstream, err)
		}
		return decimal.Zero, err
	}
	return res.(decimal.Decimal), nil
}

// State reports the breaker state, for health checks.
func (b *Breaker) State() gobreaker.State {
	return b.breaker.State()
}
