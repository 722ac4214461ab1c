package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/web3-frozen/hypurr-exporter/internal/monitor"
	"github.com/web3-frozen/hypurr-exporter/internal/upstream"
)

const testVault = "0xdfc24b077bc1425ad1dea75bcb6f8158e10df303"

func vaultBody(portfolio string) string {
	return `{
		"name": "HLP",
		"vaultAddress": "` + testVault + `",
		"leader": "0x677d831aef5328190852e24f13c46cac05f984e7",
		"description": "",
		"portfolio": ` + portfolio + `,
		"apr": 0.153,
		"followerState": null,
		"leaderFraction": 0.1,
		"leaderCommission": 0.05,
		"followers": [
			{"user": "0x1", "vaultEquity": "10.0", "pnl": "1.0", "allTimePnl": "2.0", "daysFollowing": 3, "vaultEntryTime": 1, "lockupUntil": 2},
			{"user": "0x2", "vaultEquity": "20.0", "pnl": "1.0", "allTimePnl": "2.0", "daysFollowing": 3, "vaultEntryTime": 1, "lockupUntil": 2}
		],
		"maxDistributable": 1000.5,
		"maxWithdrawable": 900.25,
		"isClosed": false,
		"relationship": {"type": "parent", "data": {"childAddresses": ["0x3"]}},
		"allowDeposits": true,
		"alwaysCloseOnWithdraw": false
	}`
}

func TestVaultFetch(t *testing.T) {
	fake, info := newFakeInfo(t, map[string]string{"vaultDetails": vaultBody(dayPortfolio)})

	got, err := NewVault(info).Fetch(context.Background(), testVault)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	want := monitor.Vault{
		Value:            12.25,
		PnL:              -0.75,
		APR:              0.153,
		LeaderFraction:   0.1,
		LeaderCommission: 0.05,
		Followers:        2,
		MaxDistributable: 1000.5,
		MaxWithdrawable:  900.25,
		IsClosed:         false,
		AllowDeposits:    true,
	}
	if got != want {
		t.Errorf("Fetch = %+v, want %+v", got, want)
	}

	reqs := fake.requests()
	if len(reqs) != 1 || reqs[0].VaultAddress != testVault {
		t.Errorf("requests = %+v", reqs)
	}
}

func TestVaultFetchErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKind error
	}{
		{"no daily period", vaultBody(`[["week", {"accountValueHistory": [[1, "1"]], "pnlHistory": [[1, "1"]], "vlm": "0"}]]`), upstream.ErrNoDailyPeriod},
		{"empty pnl history", vaultBody(`[["day", {"accountValueHistory": [[1, "1"]], "pnlHistory": [], "vlm": "0"}]]`), upstream.ErrEmptyHistory},
		{"unparsable value", vaultBody(`[["day", {"accountValueHistory": [[1, "abc"]], "pnlHistory": [[1, "1"]], "vlm": "0"}]]`), upstream.ErrNumericParse},
		{"malformed json", `{"portfolio": [`, upstream.ErrDecode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, info := newFakeInfo(t, map[string]string{"vaultDetails": tt.body})
			_, err := NewVault(info).Fetch(context.Background(), testVault)
			if !errors.Is(err, tt.wantKind) {
				t.Errorf("err = %v, want %v", err, tt.wantKind)
			}
		})
	}
}

func TestVaultFetchTransportError(t *testing.T) {
	_, info := newFakeInfo(t, map[string]string{})
	if _, err := NewVault(info).Fetch(context.Background(), testVault); !errors.Is(err, upstream.ErrTransport) {
		t.Errorf("err = %v, want ErrTransport", err)
	}
}
