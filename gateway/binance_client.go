// Package gateway fetches order book and trade snapshots from the Binance
// REST API. It only shapes raw exchange data for the analysis core; all
// algorithmic decisions live elsewhere.
package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"market-analyzer-go/market"
	"market-analyzer-go/metrics"
)

// Client is a read-only Binance REST client. HTTPClient can be replaced
// with an httptest client; no real network call happens by default.
type Client struct {
	BaseURL        string // spot, e.g. https://api.binance.com
	FuturesBaseURL string // derivatives, e.g. https://fapi.binance.com
	HTTPClient     *http.Client
}

// NewDefaultHTTPClient returns the http client used outside tests.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// FetchBook fetches a depth snapshot. Bids arrive sorted descending and
// asks ascending; the order is preserved verbatim.
func (c *Client) FetchBook(ctx context.Context, symbol string, limit int, futures bool) (*market.Book, error) {
	endpoint := "/api/v3/depth"
	if futures {
		endpoint = "/fapi/v1/depth"
	}
	body, err := c.get(ctx, endpoint, symbol, limit, futures)
	if err != nil {
		return nil, err
	}

	root := gjson.ParseBytes(body)
	bids := root.Get("bids")
	asks := root.Get("asks")
	if !bids.Exists() || !asks.Exists() {
		return nil, fmt.Errorf("depth response missing bids/asks")
	}
	return &market.Book{
		Bids:         parseLevels(bids),
		Asks:         parseLevels(asks),
		LastUpdateID: root.Get("lastUpdateId").Int(),
	}, nil
}

// FetchTrades fetches recent trades in exchange-reported execution order.
func (c *Client) FetchTrades(ctx context.Context, symbol string, limit int, futures bool) ([]market.Trade, error) {
	endpoint := "/api/v3/trades"
	if futures {
		endpoint = "/fapi/v1/trades"
	}
	body, err := c.get(ctx, endpoint, symbol, limit, futures)
	if err != nil {
		return nil, err
	}

	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return nil, fmt.Errorf("unexpected trades response format")
	}
	raw := root.Array()
	trades := make([]market.Trade, 0, len(raw))
	for _, v := range raw {
		trades = append(trades, market.Trade{
			Time:  v.Get("time").Int(),
			Price: v.Get("price").Float(),
			Qty:   v.Get("qty").Float(),
			Side:  market.TakerSide(v.Get("isBuyerMaker").Bool()),
		})
	}
	return trades, nil
}

func (c *Client) get(ctx context.Context, endpoint, symbol string, limit int, futures bool) ([]byte, error) {
	if c == nil || c.HTTPClient == nil {
		return nil, fmt.Errorf("http client not set")
	}
	base := c.BaseURL
	marketType := "spot"
	if futures {
		base = c.FuturesBaseURL
		marketType = "futures"
	}
	if base == "" {
		return nil, fmt.Errorf("base url not set for %s", marketType)
	}

	query := url.Values{}
	query.Set("symbol", symbol)
	query.Set("limit", strconv.Itoa(limit))
	target := base + endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	metrics.FetchDuration.WithLabelValues(endpoint, marketType).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FetchErrors.WithLabelValues(endpoint, marketType).Inc()
		return nil, fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		metrics.FetchErrors.WithLabelValues(endpoint, marketType).Inc()
		return nil, fmt.Errorf("fetch %s: status %d", endpoint, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.FetchErrors.WithLabelValues(endpoint, marketType).Inc()
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	return body, nil
}

// parseLevels converts [["price","qty"], ...] into levels in given order.
func parseLevels(v gjson.Result) []market.Level {
	raw := v.Array()
	out := make([]market.Level, 0, len(raw))
	for _, e := range raw {
		pair := e.Array()
		if len(pair) < 2 {
			continue
		}
		out = append(out, market.Level{Price: pair[0].Float(), Qty: pair[1].Float()})
	}
	return out
}
