// Package market wraps the CoinMarketCap REST API behind the five lookups
// the assistant's tools need.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	quotesLatestPath     = "/v1/cryptocurrency/quotes/latest"
	listingsLatestPath   = "/v1/cryptocurrency/listings/latest"
	quotesHistoricalPath = "/v2/cryptocurrency/quotes/historical"
	fearGreedLatestPath  = "/v3/fear-and-greed/latest"
	fearGreedHistPath    = "/v3/fear-and-greed/historical"
	keyInfoPath          = "/v1/key/info"
)

// Client is a CoinMarketCap API client.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	sf      singleflight.Group // dedupe identical in-flight requests
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// TestConnection verifies the API key against the key info endpoint.
func (c *Client) TestConnection(ctx context.Context) error {
	var out cmcKeyInfo
	return c.get(ctx, keyInfoPath, nil, &out)
}

// LatestQuote returns the current USD quote for a symbol.
func (c *Client) LatestQuote(ctx context.Context, symbol string) (*Quote, error) {
	var out cmcQuotesLatest
	q := url.Values{"symbol": {symbol}}
	if err := c.get(ctx, quotesLatestPath, q, &out); err != nil {
		return nil, err
	}
	cur, ok := out.Data[symbol]
	if !ok {
		return nil, fmt.Errorf("no data available for %s", symbol)
	}
	usd := cur.Quote.USD
	return &Quote{
		Symbol:           symbol,
		Name:             cur.Name,
		Price:            usd.Price,
		MarketCap:        usd.MarketCap,
		Volume24h:        usd.Volume24h,
		PercentChange24h: usd.PercentChange24h,
		PercentChange7d:  usd.PercentChange7d,
		LastUpdated:      usd.LastUpdated,
	}, nil
}

// TopMovers returns the top gainers and losers by 24h change among the
// universe biggest coins by market cap.
func (c *Client) TopMovers(ctx context.Context, universe, topN int) (*Movers, error) {
	var out cmcListings
	q := url.Values{
		"limit":    {strconv.Itoa(universe)},
		"sort":     {"market_cap"},
		"sort_dir": {"desc"},
		"convert":  {"USD"},
	}
	if err := c.get(ctx, listingsLatestPath, q, &out); err != nil {
		return nil, err
	}

	movers := &Movers{Gainers: []Mover{}, Losers: []Mover{}}
	for _, cur := range out.Data {
		usd := cur.Quote.USD
		if usd.MarketCap <= 0 {
			continue
		}
		m := Mover{
			Name:             cur.Name,
			Symbol:           cur.Symbol,
			Rank:             cur.Rank,
			Price:            usd.Price,
			MarketCap:        usd.MarketCap,
			PercentChange24h: usd.PercentChange24h,
		}
		switch {
		case usd.PercentChange24h > 0:
			movers.Gainers = append(movers.Gainers, m)
		case usd.PercentChange24h < 0:
			movers.Losers = append(movers.Losers, m)
		}
	}

	sort.Slice(movers.Gainers, func(i, j int) bool {
		return movers.Gainers[i].PercentChange24h > movers.Gainers[j].PercentChange24h
	})
	sort.Slice(movers.Losers, func(i, j int) bool {
		return movers.Losers[i].PercentChange24h < movers.Losers[j].PercentChange24h
	})
	if len(movers.Gainers) > topN {
		movers.Gainers = movers.Gainers[:topN]
	}
	if len(movers.Losers) > topN {
		movers.Losers = movers.Losers[:topN]
	}
	return movers, nil
}

// FearGreedLatest returns the current Fear & Greed index reading.
func (c *Client) FearGreedLatest(ctx context.Context) (*FearGreed, error) {
	var out cmcFearGreedLatest
	if err := c.get(ctx, fearGreedLatestPath, nil, &out); err != nil {
		return nil, err
	}
	return &FearGreed{
		Value:          out.Data.Value,
		Classification: out.Data.Classification,
		Timestamp:      out.Data.UpdateTime,
	}, nil
}

// FearGreedOn returns the index reading for a past day. The API only offers
// a window dump, so the full window is fetched and the record matching the
// requested midnight is picked; failing an exact match, the nearest one.
func (c *Client) FearGreedOn(ctx context.Context, day time.Time, windowDays int) (*FearGreed, error) {
	var out cmcFearGreedHistorical
	q := url.Values{"limit": {strconv.Itoa(windowDays)}}
	if err := c.get(ctx, fearGreedHistPath, q, &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, fmt.Errorf("no fear and greed history available")
	}

	y, m, d := day.UTC().Date()
	want := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()

	bestIdx := -1
	var bestDiff int64
	for i, rec := range out.Data {
		ts, err := strconv.ParseInt(rec.Timestamp, 10, 64)
		if err != nil {
			continue
		}
		diff := ts - want
		if diff < 0 {
			diff = -diff
		}
		if bestIdx == -1 || diff < bestDiff {
			bestIdx, bestDiff = i, diff
		}
		if diff == 0 {
			break
		}
	}
	if bestIdx == -1 {
		return nil, fmt.Errorf("no fear and greed data for %s", day.Format("2006-01-02"))
	}

	rec := out.Data[bestIdx]
	fg := &FearGreed{
		Value:          rec.Value,
		Classification: rec.Classification,
		Timestamp:      day.Format("2006-01-02"),
	}
	if ts, err := strconv.ParseInt(rec.Timestamp, 10, 64); err == nil {
		actual := time.Unix(ts, 0).UTC().Format("2006-01-02")
		if actual != fg.Timestamp {
			fg.ActualDate = actual
		}
	}
	return fg, nil
}

// HistoricalQuote returns a price for symbol near target. A two hour window
// around the target at 5m granularity keeps the odds of an empty interval
// low; the first quote in the window wins.
func (c *Client) HistoricalQuote(ctx context.Context, symbol string, target time.Time) (*HistoricalPrice, error) {
	target = target.UTC()
	q := url.Values{
		"symbol":     {symbol},
		"time_start": {target.Add(-time.Hour).Format("2006-01-02T15:04:00Z")},
		"time_end":   {target.Add(time.Hour).Format("2006-01-02T15:04:00Z")},
		"interval":   {"5m"},
		"convert":    {"USD"},
		"aux":        {"price"},
	}
	var out cmcQuotesHistorical
	if err := c.get(ctx, quotesHistoricalPath, q, &out); err != nil {
		return nil, err
	}

	series, ok := out.Data[symbol]
	if !ok || len(series) == 0 || len(series[0].Quotes) == 0 {
		return nil, fmt.Errorf("no price data available for %s on %s", symbol, target.Format("2006-01-02"))
	}
	first := series[0]
	obs := first.Quotes[0]

	actual := obs.Timestamp
	if t, err := time.Parse(time.RFC3339, obs.Timestamp); err == nil {
		actual = t.UTC().Format("2006-01-02 15:04 UTC")
	}
	return &HistoricalPrice{
		Symbol:        symbol,
		Name:          first.Name,
		Price:         obs.Quote.USD.Price,
		RequestedDate: target.Format("2006-01-02"),
		ActualDate:    actual,
	}, nil
}

// get performs one API GET, deduping concurrent identical requests.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	body, err, shared := c.sf.Do(u, func() (any, error) {
		return c.fetch(ctx, u)
	})
	if err != nil {
		return err
	}
	if shared {
		log.Debug().Str("url", path).Msg("request shared with in-flight call")
	}
	if err := json.Unmarshal(body.([]byte), out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return checkStatus(out)
}

func (c *Client) fetch(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-CMC_PRO_API_KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coinmarketcap request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	log.Debug().
		Str("url", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("coinmarketcap request")

	if resp.StatusCode != http.StatusOK {
		// Error responses still carry the status envelope; surface its message
		var env struct {
			Status cmcStatus `json:"status"`
		}
		if jsonErr := json.Unmarshal(body, &env); jsonErr == nil && env.Status.ErrorMessage != "" {
			return nil, fmt.Errorf("coinmarketcap: %s (code %d)", env.Status.ErrorMessage, env.Status.ErrorCode)
		}
		return nil, fmt.Errorf("coinmarketcap returned status %d", resp.StatusCode)
	}
	return body, nil
}

// checkStatus inspects the decoded envelope for an API-level error.
func checkStatus(out any) error {
	type statusCarrier interface{ status() cmcStatus }
	if sc, ok := out.(statusCarrier); ok {
		if st := sc.status(); st.ErrorCode != 0 {
			return fmt.Errorf("coinmarketcap: %s (code %d)", st.ErrorMessage, st.ErrorCode)
		}
	}
	return nil
}
