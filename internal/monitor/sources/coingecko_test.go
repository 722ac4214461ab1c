package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/web3-frozen/hypurr-exporter/internal/monitor"
	"github.com/web3-frozen/hypurr-exporter/internal/upstream"
)

const coinGeckoBody = `{
	"id": "hyperliquid",
	"symbol": "hype",
	"market_data": {
		"current_price": {"usd": 27.5, "eur": 25.1},
		"market_cap": {"usd": 1000},
		"fully_diluted_valuation": {"usd": 1200},
		"total_value_locked": {"usd": 300},
		"circulating_supply": 900000,
		"total_supply": 1000000.0
	}
}`

func coinGeckoServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.Header.Get("x-cg-api-key") != "cg-key" {
			http.Error(w, "missing key", http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCoinGeckoFetch(t *testing.T) {
	srv := coinGeckoServer(t, coinGeckoBody)

	got, err := NewCoinGecko(srv.URL, srv.Client()).Fetch(context.Background(), "cg-key")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	want := monitor.Market{
		Price:             27.5,
		MarketCap:         1000,
		FDV:               1200,
		TVL:               300,
		CirculatingSupply: 900000,
		TotalSupply:       1000000,
	}
	if got != want {
		t.Errorf("Fetch = %+v, want %+v", got, want)
	}
}

func TestCoinGeckoFetchWrongKey(t *testing.T) {
	srv := coinGeckoServer(t, coinGeckoBody)
	if _, err := NewCoinGecko(srv.URL, srv.Client()).Fetch(context.Background(), "other"); !errors.Is(err, upstream.ErrTransport) {
		t.Errorf("err = %v, want ErrTransport", err)
	}
}

func TestCoinGeckoFieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		replace   [2]string
		wantField string
	}{
		{"price missing", [2]string{`"current_price": {"usd": 27.5, "eur": 25.1}`, `"current_price": {"eur": 25.1}`}, "market_data.current_price.usd"},
		{"marketcap not integral", [2]string{`"market_cap": {"usd": 1000}`, `"market_cap": {"usd": 1000.5}`}, "market_data.market_cap.usd"},
		{"fdv null", [2]string{`"fully_diluted_valuation": {"usd": 1200}`, `"fully_diluted_valuation": {"usd": null}`}, "market_data.fully_diluted_valuation.usd"},
		{"tvl string", [2]string{`"total_value_locked": {"usd": 300}`, `"total_value_locked": {"usd": "300"}`}, "market_data.total_value_locked.usd"},
		{"circulating missing", [2]string{`"circulating_supply": 900000,`, ``}, "market_data.circulating_supply"},
		{"total supply wrong kind", [2]string{`"total_supply": 1000000.0`, `"total_supply": {"usd": 1}`}, "market_data.total_supply"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.Replace(coinGeckoBody, tt.replace[0], tt.replace[1], 1)
			if body == coinGeckoBody {
				t.Fatalf("replacement %q did not apply", tt.replace[0])
			}
			srv := coinGeckoServer(t, body)
			got, err := NewCoinGecko(srv.URL, srv.Client()).Fetch(context.Background(), "cg-key")
			if !errors.Is(err, upstream.ErrMissingOrWrongType) {
				t.Fatalf("err = %v, want ErrMissingOrWrongType", err)
			}
			var fe *upstream.FieldError
			if !errors.As(err, &fe) || fe.Field != tt.wantField {
				t.Errorf("field = %v, want %s", err, tt.wantField)
			}
			if got != (monitor.Market{}) {
				t.Errorf("partial market leaked: %+v", got)
			}
		})
	}
}

func TestCoinGeckoDecodeError(t *testing.T) {
	srv := coinGeckoServer(t, `not json`)
	if _, err := NewCoinGecko(srv.URL, srv.Client()).Fetch(context.Background(), "cg-key"); !errors.Is(err, upstream.ErrDecode) {
		t.Errorf("err = %v, want ErrDecode", err)
	}
}
