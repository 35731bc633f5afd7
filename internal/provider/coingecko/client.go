// Package coingecko fetches Bitcoin market data from the CoinGecko public
// REST API. The client is polite by construction: a token-bucket limiter
// spaces requests to free-tier rates and a circuit breaker stops a failing
// upstream from being hammered by polling callers.
package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/btcwatch/btcwatch/internal/config"
	"github.com/btcwatch/btcwatch/internal/market"
	"github.com/btcwatch/btcwatch/internal/telemetry/metrics"
)

// Client talks to the CoinGecko v3 API.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker
	metrics   *metrics.ProviderMetrics
}

// New builds a client from provider configuration. The registerer receives
// the client's Prometheus collectors; nil selects the default registry.
func New(cfg config.ProviderConfig, reg prometheus.Registerer) *Client {
	failures := uint32(cfg.Circuit.FailureThreshold)
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "coingecko",
		Timeout: time.Duration(cfg.Circuit.OpenTimeoutSecs) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("provider", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("provider circuit state changed")
		},
	})

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		breaker: breaker,
		metrics: metrics.NewProviderMetrics(reg, "coingecko"),
	}
}

// marketRecord mirrors one element of the /coins/markets response. Required
// fields are pointers so a missing or null value is distinguishable from zero.
type marketRecord struct {
	CurrentPrice *float64 `json:"current_price"`
	High24h      *float64 `json:"high_24h"`
	Low24h       *float64 `json:"low_24h"`
	MarketCap    *float64 `json:"market_cap"`
	TotalVolume  *float64 `json:"total_volume"`
	Change1h     *float64 `json:"price_change_percentage_1h_in_currency"`
	Change24h    *float64 `json:"price_change_percentage_24h_in_currency"`
	Change7d     *float64 `json:"price_change_percentage_7d_in_currency"`
}

// missingFields lists required fields the record lacks. Percentage changes
// are optional and default to zero.
func (r *marketRecord) missingFields() []string {
	var missing []string
	if r.CurrentPrice == nil {
		missing = append(missing, "current_price")
	}
	if r.High24h == nil {
		missing = append(missing, "high_24h")
	}
	if r.Low24h == nil {
		missing = append(missing, "low_24h")
	}
	if r.MarketCap == nil {
		missing = append(missing, "market_cap")
	}
	if r.TotalVolume == nil {
		missing = append(missing, "total_volume")
	}
	return missing
}

// Snapshot fetches current Bitcoin market statistics. A single failure is
// surfaced to the caller; there is no retry.
func (c *Client) Snapshot(ctx context.Context) (market.Snapshot, error) {
	query := url.Values{}
	query.Set("vs_currency", "usd")
	query.Set("ids", "bitcoin")
	query.Set("price_change_percentage", "1h,24h,7d")

	body, err := c.fetch(ctx, "markets", c.baseURL+"/coins/markets?"+query.Encode())
	if err != nil {
		return market.Snapshot{}, err
	}

	var records []marketRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return market.Snapshot{}, fmt.Errorf("%w: %v", ErrDataFormat, err)
	}
	if len(records) == 0 {
		return market.Snapshot{}, fmt.Errorf("%w: empty response", ErrDataFormat)
	}

	record := records[0]
	if missing := record.missingFields(); len(missing) > 0 {
		return market.Snapshot{}, fmt.Errorf("%w: missing required fields: %s",
			ErrDataFormat, strings.Join(missing, ", "))
	}

	snap := market.Snapshot{
		FetchedAt: time.Now().UTC(),
		Price:     decimal.NewFromFloat(*record.CurrentPrice),
		High24h:   decimal.NewFromFloat(*record.High24h),
		Low24h:    decimal.NewFromFloat(*record.Low24h),
		MarketCap: decimal.NewFromFloat(*record.MarketCap),
		Volume24h: decimal.NewFromFloat(*record.TotalVolume),
		Change1h:  deref(record.Change1h),
		Change24h: deref(record.Change24h),
		Change7d:  deref(record.Change7d),
	}

	log.Debug().
		Str("price", snap.Price.String()).
		Float64("change_24h", snap.Change24h).
		Msg("market snapshot retrieved")

	return snap, nil
}

// PricePoints fetches the recent Bitcoin price series covering the given
// number of past hours, sorted oldest first. Entries the API returns in an
// unexpected shape are skipped; an entirely unusable series is an error.
func (c *Client) PricePoints(ctx context.Context, hours float64) ([]market.PricePoint, error) {
	if hours <= 0 {
		return nil, fmt.Errorf("hours must be positive, got %g", hours)
	}

	query := url.Values{}
	query.Set("vs_currency", "usd")
	query.Set("days", fmt.Sprintf("%g", hours/24))
	query.Set("interval", "minute")

	body, err := c.fetch(ctx, "market_chart", c.baseURL+"/coins/bitcoin/market_chart?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var payload struct {
		Prices []json.RawMessage `json:"prices"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataFormat, err)
	}
	if payload.Prices == nil {
		return nil, fmt.Errorf("%w: missing prices list", ErrDataFormat)
	}

	points := make([]market.PricePoint, 0, len(payload.Prices))
	for _, raw := range payload.Prices {
		var entry []float64
		if err := json.Unmarshal(raw, &entry); err != nil || len(entry) != 2 {
			continue
		}
		points = append(points, market.PricePoint{
			Time:  time.UnixMilli(int64(entry[0])).UTC(),
			Price: entry[1],
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no valid price points returned", ErrDataFormat)
	}

	market.SortPoints(points)
	return points, nil
}

// fetch runs one rate-limited GET through the circuit breaker and records
// the outcome.
func (c *Client) fetch(ctx context.Context, endpoint, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.get(ctx, rawURL)
	})
	c.metrics.RecordRequest(endpoint, err, time.Since(start))

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit open after repeated failures", ErrNetwork)
		}
		log.Error().Err(err).Str("endpoint", endpoint).Msg("provider request failed")
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return result.([]byte), nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
