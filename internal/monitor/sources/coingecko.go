package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/web3-frozen/hypurr-exporter/internal/monitor"
	"github.com/web3-frozen/hypurr-exporter/internal/upstream"
)

const coinGeckoHyperliquidAPI = "https://api.coingecko.com/api/v3/coins/hyperliquid"

// CoinGecko fetches HYPE market figures from the CoinGecko coin endpoint.
type CoinGecko struct {
	client  *http.Client
	baseURL string
}

func NewCoinGecko(baseURL string, client *http.Client) *CoinGecko {
	if baseURL == "" {
		baseURL = coinGeckoHyperliquidAPI
	}
	if client == nil {
		client = upstream.NewHTTPClient(upstream.DefaultTimeout)
	}
	return &CoinGecko{client: client, baseURL: baseURL}
}

func (c *CoinGecko) Name() string { return "coingecko" }

// Fetch requires all six figures; a single missing or mistyped one fails the
// whole group.
func (c *CoinGecko) Fetch(ctx context.Context, apiKey string) (monitor.Market, error) {
	body, err := upstream.Get(ctx, c.client, c.baseURL, http.Header{
		"Accept":       {"application/json"},
		"x-cg-api-key": {apiKey},
	})
	if err != nil {
		return monitor.Market{}, fmt.Errorf("coingecko API: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return monitor.Market{}, fmt.Errorf("decode coingecko: %w: %v", upstream.ErrDecode, err)
	}

	var m monitor.Market
	if m.Price, err = floatAt(doc, "market_data.current_price.usd"); err != nil {
		return monitor.Market{}, err
	}
	if m.MarketCap, err = intAt(doc, "market_data.market_cap.usd"); err != nil {
		return monitor.Market{}, err
	}
	if m.FDV, err = intAt(doc, "market_data.fully_diluted_valuation.usd"); err != nil {
		return monitor.Market{}, err
	}
	if m.TVL, err = intAt(doc, "market_data.total_value_locked.usd"); err != nil {
		return monitor.Market{}, err
	}
	if m.CirculatingSupply, err = floatAt(doc, "market_data.circulating_supply"); err != nil {
		return monitor.Market{}, err
	}
	if m.TotalSupply, err = floatAt(doc, "market_data.total_supply"); err != nil {
		return monitor.Market{}, err
	}
	return m, nil
}

func lookup(doc map[string]any, path string) (any, bool) {
	var cur any = doc
	for _, key := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = obj[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func floatAt(doc map[string]any, path string) (float64, error) {
	v, ok := lookup(doc, path)
	n, isNum := v.(json.Number)
	if !ok || !isNum {
		return 0, upstream.Field(path, upstream.ErrMissingOrWrongType)
	}
	f, err := n.Float64()
	if err != nil {
		return 0, upstream.Field(path, upstream.ErrMissingOrWrongType)
	}
	return f, nil
}

// intAt only accepts integral JSON numbers.
func intAt(doc map[string]any, path string) (int64, error) {
	v, ok := lookup(doc, path)
	n, isNum := v.(json.Number)
	if !ok || !isNum {
		return 0, upstream.Field(path, upstream.ErrMissingOrWrongType)
	}
	i, err := n.Int64()
	if err != nil {
		return 0, upstream.Field(path, upstream.ErrMissingOrWrongType)
	}
	return i, nil
}
