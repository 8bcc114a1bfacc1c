// Package ratesource fetches official exchange rates from an external API.
package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/ports"
	"github.com/SscSPs/forexdesk/internal/middleware"
	"github.com/shopspring/decimal"
)

// ErrUnsupportedPair is returned when the upstream has no rate for the requested pair.
var ErrUnsupportedPair = fmt.Errorf("%w: pair not supported by rate source", apperrors.ErrUpstream)

// DefaultBaseURL is the public frankfurter endpoint.
const DefaultBaseURL = "https://api.frankfurter.dev/v1"

// Client queries a frankfurter compatible API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient constructs a Client. A zero timeout falls back to five seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

var _ ports.RateProvider = (*Client)(nil)

type latestResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// LookupRate returns how many units of quote one unit of base buys.
func (c *Client) LookupRate(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	q := url.Values{}
	q.Set("base", base)
	q.Set("symbols", quote)
	endpoint := fmt.Sprintf("%s/latest?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: building request: %v", apperrors.ErrUpstream, err)
	}
	logger.Debug("Loading official rate", slog.String("base", base), slog.String("quote", quote))

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusUnprocessableEntity:
		return decimal.Zero, fmt.Errorf("%w (%s/%s)", ErrUnsupportedPair, base, quote)
	case resp.StatusCode != http.StatusOK:
		return decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrUpstream,
			apperrors.NewAppError(resp.StatusCode, "rate source returned "+resp.Status, nil))
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: decoding response: %v", apperrors.ErrUpstream, err)
	}
	rate, ok := body.Rates[quote]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w (%s/%s)", ErrUnsupportedPair, base, quote)
	}
	return rate, nil
}
