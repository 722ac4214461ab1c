package sources

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/web3-frozen/hypurr-exporter/internal/hyperliquid"
	"github.com/web3-frozen/hypurr-exporter/internal/upstream"
)

const testUser = "0x1111111111111111111111111111111111111111"

const stakingBody = `{"delegated": "100.5", "undelegated": "20.25", "totalPendingWithdrawal": "3.0", "nPendingWithdrawals": 1}`

func TestUserFetch(t *testing.T) {
	fake, info := newFakeInfo(t, map[string]string{
		"portfolio":        dayPortfolio,
		"delegatorSummary": stakingBody,
		"openOrders": `[
			{"coin": "HYPE", "limitPx": "10", "oid": 1, "side": "B", "sz": "2", "timestamp": 1},
			{"coin": "BTC", "limitPx": "bad", "oid": 2, "side": "A", "sz": "1", "timestamp": 2}
		]`,
	})

	got, err := NewUser(info).Fetch(context.Background(), testUser)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.AccountValue != 12.25 || got.PnL != -0.75 {
		t.Errorf("portfolio values = %v, %v", got.AccountValue, got.PnL)
	}
	if got.StakingDelegated != 100.5 || got.StakingUndelegated != 20.25 || got.StakingPendingWithdrawal != 3 {
		t.Errorf("staking = %+v", got)
	}
	if got.OpenOrders != 2 {
		t.Errorf("OpenOrders = %d, want 2", got.OpenOrders)
	}
	if got.OpenOrdersValue != 20 {
		t.Errorf("OpenOrdersValue = %v, want 20", got.OpenOrdersValue)
	}

	var types []string
	for _, r := range fake.requests() {
		if r.User != testUser {
			t.Errorf("request %s for user %q", r.Type, r.User)
		}
		types = append(types, r.Type)
	}
	sort.Strings(types)
	if len(types) != 3 || types[0] != "delegatorSummary" || types[1] != "openOrders" || types[2] != "portfolio" {
		t.Errorf("request types = %v", types)
	}
}

func TestOpenOrdersValue(t *testing.T) {
	tests := []struct {
		name   string
		orders []hyperliquid.OpenOrder
		want   float64
	}{
		{"none", nil, 0},
		{"single", []hyperliquid.OpenOrder{{LimitPx: "10", Sz: "2"}}, 20},
		{"skips bad price", []hyperliquid.OpenOrder{{LimitPx: "10", Sz: "2"}, {LimitPx: "bad", Sz: "1"}}, 20},
		{"skips bad size", []hyperliquid.OpenOrder{{LimitPx: "10", Sz: ""}, {LimitPx: "0.1", Sz: "3"}}, 0.3},
		{"decimal exact", []hyperliquid.OpenOrder{{LimitPx: "0.1", Sz: "0.2"}, {LimitPx: "0.2", Sz: "0.1"}}, 0.04},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := openOrdersValue(tt.orders); got != tt.want {
				t.Errorf("openOrdersValue = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserFetchErrors(t *testing.T) {
	tests := []struct {
		name     string
		replies  map[string]string
		wantKind error
	}{
		{
			name: "bad staking decimal",
			replies: map[string]string{
				"portfolio":        dayPortfolio,
				"delegatorSummary": `{"delegated": "x", "undelegated": "1", "totalPendingWithdrawal": "1", "nPendingWithdrawals": 0}`,
				"openOrders":       `[]`,
			},
			wantKind: upstream.ErrNumericParse,
		},
		{
			name: "no daily period",
			replies: map[string]string{
				"portfolio":        `[]`,
				"delegatorSummary": stakingBody,
				"openOrders":       `[]`,
			},
			wantKind: upstream.ErrNoDailyPeriod,
		},
		{
			name: "open orders unavailable",
			replies: map[string]string{
				"portfolio":        dayPortfolio,
				"delegatorSummary": stakingBody,
			},
			wantKind: upstream.ErrTransport,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, info := newFakeInfo(t, tt.replies)
			_, err := NewUser(info).Fetch(context.Background(), testUser)
			if !errors.Is(err, tt.wantKind) {
				t.Errorf("err = %v, want %v", err, tt.wantKind)
			}
		})
	}
}
