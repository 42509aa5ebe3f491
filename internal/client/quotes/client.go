// Package quotes is the live price adapter: a best-effort HTTP client that
// maps symbols to their latest price.
package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"tradejournal/internal/trace"
)

// Result is the outcome of one quote lookup. Prices may be partial; Err is set
// when the whole lookup failed.
type Result struct {
	Prices map[string]float64
	Err    error
}

// PricesOrEmpty degrades a failed lookup to an empty price map.
func (r Result) PricesOrEmpty() map[string]float64 {
	if r.Err != nil || r.Prices == nil {
		return map[string]float64{}
	}
	return r.Prices
}

// Source is anything that can produce live prices.
type Source interface {
	Quotes(ctx context.Context, symbols []string) Result
}

var ErrNotConfigured = errors.New("quotes base url is empty")

type Client struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
	Limiter *rate.Limiter
	Logger  *zap.Logger
}

type Option func(*Client)

func WithAPIKey(key string) Option {
	return func(c *Client) { c.APIKey = strings.TrimSpace(key) }
}

// WithRateLimit caps outgoing requests. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.Limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.Logger = l }
}

func NewClient(httpClient *http.Client, baseURL string, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 3 * time.Second}
	}
	c := &Client{
		HTTP:    httpClient,
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Quotes fetches prices for symbols in one request. It never retries.
func (c *Client) Quotes(ctx context.Context, symbols []string) Result {
	ctx, span := trace.StartSpan(ctx, "quotes.fetch")
	res := c.fetch(ctx, symbols)
	trace.End(span, res.Err)
	return res
}

func (c *Client) fetch(ctx context.Context, symbols []string) Result {
	if c == nil || c.BaseURL == "" {
		return Result{Err: ErrNotConfigured}
	}
	symbols = normalizeSymbols(symbols)
	if len(symbols) == 0 {
		return Result{Prices: map[string]float64{}}
	}
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return Result{Err: fmt.Errorf("quotes rate limit: %w", err)}
		}
	}

	endpoint := c.BaseURL + "/quotes?symbols=" + url.QueryEscape(strings.Join(symbols, ","))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{Err: fmt.Errorf("quotes request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("X-API-Key", c.APIKey)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Result{Err: fmt.Errorf("quotes http: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{Err: fmt.Errorf("quotes read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Err: fmt.Errorf("quotes http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	prices, err := parsePrices(body)
	if err != nil {
		return Result{Err: fmt.Errorf("quotes parse: %w", err)}
	}
	if c.Logger != nil {
		c.Logger.Debug("quotes fetched",
			zap.Int("requested", len(symbols)),
			zap.Int("priced", len(prices)),
			zap.Duration("took", time.Since(start)),
		)
	}
	return Result{Prices: prices}
}

// parsePrices accepts {"SYM": 12.3, "OTHER": "45.6"}. Entries that are not
// finite positive numbers are dropped.
func parsePrices(body []byte) (map[string]float64, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(raw))
	for sym, val := range raw {
		p, ok := parsePrice(val)
		if !ok {
			continue
		}
		out[strings.ToUpper(strings.TrimSpace(sym))] = p
	}
	return out, nil
}

func parsePrice(raw json.RawMessage) (float64, bool) {
	var num float64
	if err := json.Unmarshal(raw, &num); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		num = v
	}
	if math.IsNaN(num) || math.IsInf(num, 0) || num <= 0 {
		return 0, false
	}
	return num, true
}

func normalizeSymbols(symbols []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
